package pipeline

import(
	"context"
	"time"
)

func yuvFrame(w, h, stride int, lumaAt func(x, y int) uint8) Frame {
	pix := make([]byte, stride*h*3/2)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			pix[y*stride + x] = lumaAt(x, y)
		}
	}
	for i:=stride*h; i<len(pix); i++ {
		pix[i] = 128
	}
	return Frame{
		Width:    w,
		Height:   h,
		Stride:   stride,
		Pix:      pix,
		Metadata: Metadata{ExposureTime: 10 * time.Millisecond, AnalogueGain: 2, DigitalGain: 1.5, ColourGains: [2]float64{1.8, 1.4}},
	}
}

func gray(v uint8) func(x, y int) uint8 {
	return func(x, y int) uint8 { return v }
}

// fakeCamera hands out viewfinder frames until it's configured for
// stills, then still frames.
type fakeCamera struct {
	viewfinder Frame
	still      Frame
	configured bool
	settings   CaptureSettings
	delivered  int
}

func (c *fakeCamera)ConfigureStill(settings CaptureSettings) (StreamInfo, error) {
	c.configured = true
	c.settings = settings
	return c.still.Stream(), nil
}

func (c *fakeCamera)NextFrame(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	c.delivered++
	if c.configured {
		return c.still, nil
	}
	return c.viewfinder, nil
}

type fakeEncoder struct {
	outputs []Output
}

func (e *fakeEncoder)Encode(out Output) error {
	e.outputs = append(e.outputs, out)
	return nil
}

func (e *fakeEncoder)names() []string {
	names := []string{}
	for _, o := range e.outputs {
		names = append(names, o.Name)
	}
	return names
}

type countingPreviewer struct {
	shown int
}

func (p *countingPreviewer)ShowPreview(f Frame) { p.shown++ }
