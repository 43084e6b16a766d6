package transform

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/jmylchreest/vidxform/internal/container"
	"github.com/jmylchreest/vidxform/internal/framestore"
)

// Strategy selects how a transform touches the container.
type Strategy int

const (
	// Streaming holds one frame in memory and seeks per frame.
	Streaming Strategy = iota
	// BulkSequential loads the payload once and transforms frames in order.
	BulkSequential
	// BulkParallel loads the payload once and transforms frames on a worker pool.
	BulkParallel
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case Streaming:
		return "streaming"
	case BulkSequential:
		return "bulk"
	case BulkParallel:
		return "parallel"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// IsBulk reports whether the strategy materializes the whole payload.
func (s Strategy) IsBulk() bool {
	return s == BulkSequential || s == BulkParallel
}

// ParseStrategy converts a strategy name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "streaming", "stream", "memory":
		return Streaming, nil
	case "bulk", "bulk-sequential", "sequential", "speed":
		return BulkSequential, nil
	case "parallel", "bulk-parallel":
		return BulkParallel, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Observer receives progress callbacks. Begin is called once, after the
// header is parsed. FramesDone may be called from several goroutines when the
// strategy is BulkParallel.
type Observer interface {
	Begin(h container.Header, s Strategy)
	FramesDone(n int)
}

// Options controls how an operation runs.
type Options struct {
	Strategy Strategy

	// Workers is the pool size for BulkParallel. Zero means GOMAXPROCS.
	Workers int

	// MaxPayloadSize caps the bulk payload buffer. Zero disables the cap.
	MaxPayloadSize int64

	// Atomic writes output to a temporary file renamed into place on success.
	Atomic bool

	Observer Observer
}

func (o Options) workers() int {
	if o.Strategy != BulkParallel {
		return 1
	}
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Result describes a completed operation.
type Result struct {
	Operation string           `json:"operation"`
	Input     string           `json:"input"`
	Output    string           `json:"output"`
	Header    container.Header `json:"header"`
	Strategy  string           `json:"strategy"`
	Workers   int              `json:"workers"`
	Frames    int64            `json:"frames"`
	IO        framestore.Stats `json:"io"`
	Duration  time.Duration    `json:"duration"`
}

type nopObserver struct{}

func (nopObserver) Begin(container.Header, Strategy) {}
func (nopObserver) FramesDone(int)                   {}
