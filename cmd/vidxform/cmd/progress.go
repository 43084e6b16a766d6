package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/jmylchreest/vidxform/internal/container"
	"github.com/jmylchreest/vidxform/internal/transform"
)

// progressObserver renders frame progress as a terminal bar. The bar is
// created in Begin, once the frame count is known.
type progressObserver struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newProgressObserver(w io.Writer) *progressObserver {
	return &progressObserver{w: w}
}

// Begin implements transform.Observer.
func (p *progressObserver) Begin(h container.Header, s transform.Strategy) {
	p.bar = progressbar.NewOptions64(h.FrameCount,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(fmt.Sprintf("%s (%s)", h, s)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// FramesDone implements transform.Observer. The bar serializes updates, so
// parallel workers may call it concurrently.
func (p *progressObserver) FramesDone(n int) {
	if p.bar != nil {
		_ = p.bar.Add(n)
	}
}

func (p *progressObserver) finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	fmt.Fprintln(p.w)
}
