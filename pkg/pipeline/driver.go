package pipeline

import(
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/abworrall/stackhdr/pkg/hdrstack"
)

var(
	ErrFrameShape = errors.New("bad frame shape")
	ErrDone       = errors.New("driver has finished")
)

type State int

const(
	Previewing State = iota
	Metering
	Accumulating
	Merging
	Done
)

func (s State)String() string {
	switch s {
	case Previewing:   return "Previewing"
	case Metering:     return "Metering"
	case Accumulating: return "Accumulating"
	case Merging:      return "Merging"
	case Done:         return "Done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// A Driver sequences one HDR capture: show some preview frames while
// the camera settles, meter off one frame, reconfigure for stills,
// accumulate NumFrames frames, then merge them and hand the result to
// the encoder. Frames get pushed in one at a time via HandleFrame (or
// pulled by Run). A Driver produces one image, and is then done.
type Driver struct {
	Config
	Previewer   Previewer // optional

	ctl         Controller
	enc         Encoder

	state       State
	previewed   int
	accumulated int
	stream      StreamInfo
	acc        *hdrstack.WideImage
}

func NewDriver(cfg Config, ctl Controller, enc Encoder) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Driver{
		Config: cfg,
		ctl:    ctl,
		enc:    enc,
		state:  Previewing,
	}
	if cfg.PreviewFrames == 0 {
		d.state = Metering
	}
	return d, nil
}

func (d *Driver)State() State          { return d.state }
func (d *Driver)Accumulated() int      { return d.accumulated }
func (d *Driver)Stream() StreamInfo    { return d.stream }

// HandleFrame does whatever the current state needs with the frame,
// and moves the state machine along. It returns when the frame is
// fully processed.
func (d *Driver)HandleFrame(f Frame) error {
	switch d.state {
	case Previewing:
		d.showPreview(f)
		d.previewed++
		if d.previewed >= d.PreviewFrames {
			d.state = Metering
		}
		return nil

	case Metering:
		if err := f.CheckShape(); err != nil {
			return err
		}
		if err := d.meter(f); err != nil {
			d.state = Done
			return err
		}
		d.state = Accumulating
		return nil

	case Accumulating:
		if f.Stream() != d.stream || len(f.Pix) < d.stream.BufferSize() {
			return fmt.Errorf("%w: got %s (%d bytes), want %s", ErrFrameShape, f.Stream(), len(f.Pix), d.stream)
		}

		// This will only work well for static scenes
		log.Printf("Accumulate image %d\n", d.accumulated)
		d.acc.Accumulate(f.Pix, f.Stride)
		d.accumulated++

		if d.accumulated < d.NumFrames {
			d.showPreview(f)
			return nil
		}

		d.state = Merging
		err := d.merge(f.Metadata)
		d.state = Done
		return err
	}

	return ErrDone
}

// Run pulls frames from src until the capture is done. The context is
// only checked between frames.
func (d *Driver)Run(ctx context.Context, src FrameSource) error {
	for d.state != Done {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := src.NextFrame(ctx)
		if err != nil {
			return fmt.Errorf("next frame (%s): %w", d.state, err)
		}
		if err := d.HandleFrame(f); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver)showPreview(f Frame) {
	if d.Previewer != nil {
		d.Previewer.ShowPreview(f)
	}
}

func (d *Driver)meter(f Frame) error {
	log.Printf("Metering: %s, %s\n", f.Stream(), f.Metadata)
	if d.Verbosity > 0 {
		log.Printf("Metering frame %s\n", LumaStats(f.Pix, f.Width, f.Height, f.Stride))
	}

	// Save this image, why not.
	log.Printf("Save short\n")
	short := Output{"short", f.Width, f.Height, f.Stride, f.Pix, f.Metadata}
	if err := d.enc.Encode(short); err != nil {
		return fmt.Errorf("encode short: %w", err)
	}

	// This will boost the exposure, allowing a bit more stuff to blow
	// out, if there's really tons of stuff right at the bottom of the
	// histogram.
	expAdjust := ExposureAdjustment(f, d.ExposureAdjust)
	settings := StillSettings(f.Metadata, expAdjust)
	log.Printf("Exposure adjustment %.3f (%+.2f stops), still capture with %s\n",
		expAdjust, settings.StopsOver(f.Metadata), settings)

	stream, err := d.ctl.ConfigureStill(settings)
	if err != nil {
		return fmt.Errorf("configure still: %w", err)
	}
	d.stream = stream
	d.acc = hdrstack.NewWideImage(stream.Width, stream.Height)
	d.acc.Clear()

	return nil
}

func (d *Driver)merge(md Metadata) error {
	log.Printf("HDR processing starting\n")

	out, err := Merge(d.acc, d.Config, d.stream.Stride)
	d.acc = nil // consumed
	if err != nil {
		return err
	}

	if d.Verbosity > 0 {
		log.Printf("Output %s\n", LumaStats(out, d.stream.Width, d.stream.Height, d.stream.Stride))
	}

	log.Printf("Save hdr\n")
	hdr := Output{"hdr", d.stream.Width, d.stream.Height, d.stream.Stride, out, md}
	if err := d.enc.Encode(hdr); err != nil {
		return fmt.Errorf("encode hdr: %w", err)
	}
	return nil
}
