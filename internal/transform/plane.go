package transform

import (
	"context"

	"github.com/jmylchreest/vidxform/internal/container"
	"github.com/jmylchreest/vidxform/internal/framestore"
)

// planeOp rewrites every pixel of one channel through a lookup table.
// Clip and scale are both planeOps.
type planeOp struct {
	op      string
	channel uint8
	table   *lut
}

func (o planeOp) name() string { return o.op }

func (o planeOp) validate(geo container.Geometry) error {
	return checkChannel(geo, o.channel)
}

func (o planeOp) stream(ctx context.Context, s *framestore.Streaming, obs Observer) error {
	geo := s.Geometry()
	for i := int64(0); i < geo.FrameCount(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := s.ReadFrame(i)
		if err != nil {
			return err
		}
		plane, err := framestore.Plane(geo, frame, int(o.channel))
		if err != nil {
			return err
		}
		o.table.apply(plane)
		if err := s.WriteFrame(frame); err != nil {
			return err
		}
		obs.FramesDone(1)
	}
	return nil
}

func (o planeOp) bulk(ctx context.Context, b *framestore.Bulk, p policy, obs Observer) error {
	return p.run(ctx, b.Geometry().FrameCount(), func() taskFunc {
		return func(i int64) error {
			plane, err := b.Plane(i, int(o.channel))
			if err != nil {
				return err
			}
			o.table.apply(plane)
			obs.FramesDone(1)
			return nil
		}
	})
}
