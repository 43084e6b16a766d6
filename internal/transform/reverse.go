package transform

import (
	"context"

	"github.com/jmylchreest/vidxform/internal/container"
	"github.com/jmylchreest/vidxform/internal/framestore"
)

// reverseOp writes frames in descending index order.
type reverseOp struct{}

func (reverseOp) name() string { return "reverse" }

func (reverseOp) validate(container.Geometry) error { return nil }

func (reverseOp) stream(ctx context.Context, s *framestore.Streaming, obs Observer) error {
	for i := s.Geometry().FrameCount() - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := s.ReadFrame(i)
		if err != nil {
			return err
		}
		if err := s.WriteFrame(frame); err != nil {
			return err
		}
		obs.FramesDone(1)
	}
	return nil
}

// bulk swaps frame i with frame n-1-i in place. Each task owns one such pair,
// so no two workers touch the same frame; an odd middle frame stays put.
func (reverseOp) bulk(ctx context.Context, b *framestore.Bulk, p policy, obs Observer) error {
	n := b.Geometry().FrameCount()
	err := p.run(ctx, n/2, func() taskFunc {
		return func(i int64) error {
			head, err := b.Frame(i)
			if err != nil {
				return err
			}
			tail, err := b.Frame(n - 1 - i)
			if err != nil {
				return err
			}
			swapBytes(head, tail)
			obs.FramesDone(2)
			return nil
		}
	})
	if err != nil {
		return err
	}
	if n%2 == 1 {
		obs.FramesDone(1)
	}
	return nil
}
