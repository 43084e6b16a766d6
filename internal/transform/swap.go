package transform

import (
	"context"

	"github.com/jmylchreest/vidxform/internal/container"
	"github.com/jmylchreest/vidxform/internal/framestore"
)

// swapOp exchanges two channel planes in every frame.
type swapOp struct {
	ch1, ch2 uint8
}

func (swapOp) name() string { return "swap_channel" }

func (o swapOp) validate(geo container.Geometry) error {
	if err := checkChannel(geo, o.ch1); err != nil {
		return err
	}
	return checkChannel(geo, o.ch2)
}

// exchange swaps the planes of one frame. Equal channels leave it untouched.
func (o swapOp) exchange(geo container.Geometry, frame, scratch []byte) error {
	if o.ch1 == o.ch2 {
		return nil
	}
	a, err := framestore.Plane(geo, frame, int(o.ch1))
	if err != nil {
		return err
	}
	b, err := framestore.Plane(geo, frame, int(o.ch2))
	if err != nil {
		return err
	}
	swapPlanes(a, b, scratch)
	return nil
}

func (o swapOp) stream(ctx context.Context, s *framestore.Streaming, obs Observer) error {
	geo := s.Geometry()
	scratch := make([]byte, geo.ChannelSize())
	for i := int64(0); i < geo.FrameCount(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := s.ReadFrame(i)
		if err != nil {
			return err
		}
		if err := o.exchange(geo, frame, scratch); err != nil {
			return err
		}
		if err := s.WriteFrame(frame); err != nil {
			return err
		}
		obs.FramesDone(1)
	}
	return nil
}

func (o swapOp) bulk(ctx context.Context, b *framestore.Bulk, p policy, obs Observer) error {
	geo := b.Geometry()
	return p.run(ctx, geo.FrameCount(), func() taskFunc {
		scratch := make([]byte, geo.ChannelSize())
		return func(i int64) error {
			frame, err := b.Frame(i)
			if err != nil {
				return err
			}
			if err := o.exchange(geo, frame, scratch); err != nil {
				return err
			}
			obs.FramesDone(1)
			return nil
		}
	})
}
