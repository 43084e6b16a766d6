// Package report collects and prints run statistics: elapsed time, I/O and
// process memory usage.
package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/jmylchreest/vidxform/internal/container"
	"github.com/jmylchreest/vidxform/internal/transform"
	"github.com/jmylchreest/vidxform/pkg/bytesize"
)

// Memory is a best-effort snapshot of process and system memory. Fields the
// platform cannot report are zero.
type Memory struct {
	ProcessRSS      uint64 `json:"process_rss"`
	ProcessPeakRSS  uint64 `json:"process_peak_rss"`
	SystemTotal     uint64 `json:"system_total"`
	SystemAvailable uint64 `json:"system_available"`
}

// Peak returns the peak resident set size, falling back to the current one
// where the platform has no high-water mark.
func (m Memory) Peak() uint64 {
	if m.ProcessPeakRSS > 0 {
		return m.ProcessPeakRSS
	}
	return m.ProcessRSS
}

// SampleMemory reads the current process and system memory usage.
func SampleMemory(ctx context.Context) Memory {
	var m Memory

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		m.SystemTotal = vm.Total
		m.SystemAvailable = vm.Available
	}

	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return m
	}
	if info, err := proc.MemoryInfoWithContext(ctx); err == nil && info != nil {
		m.ProcessRSS = info.RSS
		m.ProcessPeakRSS = info.HWM
	}

	return m
}

// BulkEstimate returns the memory a bulk strategy needs for h and whether it
// fits in the available system memory. It reports true when availability is
// unknown.
func BulkEstimate(h container.Header, m Memory) (int64, bool) {
	need := h.Geometry().PayloadSize()
	if m.SystemAvailable == 0 {
		return need, true
	}
	return need, uint64(need) <= m.SystemAvailable
}

// WriteResult prints a human-readable summary of a completed run.
func WriteResult(w io.Writer, res *transform.Result, m Memory) error {
	_, err := fmt.Fprintf(w,
		"%s: %s -> %s\n"+
			"  video:    %s\n"+
			"  strategy: %s (workers: %d)\n"+
			"  time:     %s\n"+
			"  io:       %d reads, %d writes, %d seeks, %s read, %s written\n"+
			"  memory:   %s peak RSS\n",
		res.Operation, res.Input, res.Output,
		res.Header,
		res.Strategy, res.Workers,
		res.Duration,
		res.IO.Reads, res.IO.Writes, res.IO.Seeks,
		formatBytes(res.IO.BytesRead), formatBytes(res.IO.BytesWritten),
		formatBytes(int64(m.Peak())),
	)
	return err
}

// WriteHeader prints a container header with its derived geometry.
func WriteHeader(w io.Writer, path string, h container.Header, m Memory) error {
	geo := h.Geometry()
	need, fits := BulkEstimate(h, m)

	_, err := fmt.Fprintf(w,
		"%s\n"+
			"  frames:       %d\n"+
			"  channels:     %d\n"+
			"  height:       %d\n"+
			"  width:        %d\n"+
			"  channel size: %s\n"+
			"  frame size:   %s\n"+
			"  payload size: %s\n"+
			"  file size:    %s\n"+
			"  bulk memory:  %s (fits available memory: %t)\n",
		path,
		h.FrameCount, h.Channels, h.Height, h.Width,
		formatBytes(int64(geo.ChannelSize())),
		formatBytes(int64(geo.FrameSize())),
		formatBytes(geo.PayloadSize()),
		formatBytes(geo.FileSize()),
		formatBytes(need), fits,
	)
	return err
}

func formatBytes(n int64) string {
	return bytesize.Format(bytesize.Size(n))
}
