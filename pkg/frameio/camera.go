package frameio

import(
	"context"
	"fmt"
	"image"
	"log"

	"golang.org/x/image/draw"

	"github.com/abworrall/stackhdr/pkg/pipeline"
)

// A FileCamera pretends to be a camera, using image files already on
// disk. Until it is configured for stills it delivers a viewfinder
// stream: the first shot, shrunk by ViewfinderScale. After that it
// cycles through the shots at full resolution.
type FileCamera struct {
	Shots           []Shot
	ViewfinderScale float64
	StrideAlign     int

	viewfinder      *pipeline.Frame
	stills          []pipeline.Frame
	settings        pipeline.CaptureSettings
	next            int
}

func NewFileCamera(shots []Shot, viewfinderScale float64, strideAlign int) (*FileCamera, error) {
	if len(shots) == 0 {
		return nil, fmt.Errorf("FileCamera: no shots")
	}
	if viewfinderScale <= 0 || viewfinderScale > 1 {
		return nil, fmt.Errorf("FileCamera: viewfinder scale %g must be in (0,1]", viewfinderScale)
	}
	return &FileCamera{Shots: shots, ViewfinderScale: viewfinderScale, StrideAlign: strideAlign}, nil
}

func (c *FileCamera)Still() bool { return c.stills != nil }

// Settings returns what the camera was last configured with.
func (c *FileCamera)Settings() pipeline.CaptureSettings { return c.settings }

func (c *FileCamera)NextFrame(ctx context.Context) (pipeline.Frame, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.Frame{}, err
	}

	if !c.Still() {
		if c.viewfinder == nil {
			f := c.makeViewfinderFrame()
			c.viewfinder = &f
		}
		return *c.viewfinder, nil
	}

	f := c.stills[c.next % len(c.stills)]
	c.next++
	return f, nil
}

// ConfigureStill switches to full resolution frames. Files can't be
// re-exposed, so the settings only show up in the frame metadata.
func (c *FileCamera)ConfigureStill(settings pipeline.CaptureSettings) (pipeline.StreamInfo, error) {
	c.settings = settings
	md := pipeline.Metadata{
		ExposureTime: settings.ExposureTime,
		AnalogueGain: settings.AnalogueGain,
		DigitalGain:  1.0,
		ColourGains:  settings.ColourGains,
	}

	stills := make([]pipeline.Frame, len(c.Shots))
	for i, shot := range c.Shots {
		stills[i] = ImageToFrame(shot.Image, c.StrideAlign)
		stills[i].Metadata = md
		if stills[i].Stream() != stills[0].Stream() {
			return pipeline.StreamInfo{}, fmt.Errorf("FileCamera: %s is %s, but %s is %s",
				shot.Filename(), stills[i].Stream(), c.Shots[0].Filename(), stills[0].Stream())
		}
	}

	c.stills = stills
	c.next = 0
	log.Printf("FileCamera: still stream %s, %d shots\n", stills[0].Stream(), len(stills))
	return stills[0].Stream(), nil
}

func (c *FileCamera)makeViewfinderFrame() pipeline.Frame {
	src := c.Shots[0].Image
	sb := src.Bounds()
	w := int(float64(sb.Dx()) * c.ViewfinderScale)
	h := int(float64(sb.Dy()) * c.ViewfinderScale)
	if w < 2 { w = 2 }
	if h < 2 { h = 2 }

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)

	f := ImageToFrame(dst, c.StrideAlign)
	f.Metadata = c.Shots[0].Metadata
	return f
}
