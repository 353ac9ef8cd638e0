package pipeline

import(
	"context"
	"fmt"
	"time"
)

// Metadata is the exposure info that came with a frame.
type Metadata struct {
	ExposureTime time.Duration
	AnalogueGain float64
	DigitalGain  float64
	ColourGains  [2]float64 // red, blue
}

func (m Metadata)String() string {
	return fmt.Sprintf("exp %s, ag %.2f, dg %.2f, cg [%.2f %.2f]",
		m.ExposureTime, m.AnalogueGain, m.DigitalGain, m.ColourGains[0], m.ColourGains[1])
}

// A Frame is an 8-bit YUV420 image: a luma plane of Stride*Height
// bytes, then U and V planes with Stride/2 bytes per row.
type Frame struct {
	Width    int
	Height   int
	Stride   int
	Pix      []byte
	Metadata Metadata
}

func (f Frame)Stream() StreamInfo { return StreamInfo{f.Width, f.Height, f.Stride} }

// CheckShape makes sure the buffer really holds a frame of the size
// the frame claims to be.
func (f Frame)CheckShape() error {
	s := f.Stream()
	if s.Width < 2 || s.Height < 2 || s.Stride < s.Width || len(f.Pix) < s.BufferSize() {
		return fmt.Errorf("%w: %s with %d bytes", ErrFrameShape, s, len(f.Pix))
	}
	return nil
}

// StreamInfo is the geometry of the frames a camera stream delivers.
type StreamInfo struct {
	Width, Height, Stride int
}

func (s StreamInfo)String() string {
	return fmt.Sprintf("%dx%d (stride %d)", s.Width, s.Height, s.Stride)
}

// BufferSize is how many bytes a YUV420 frame in this stream needs.
func (s StreamInfo)BufferSize() int { return s.Stride * s.Height * 3 / 2 }

// CaptureSettings are what the metering step decides the still
// captures should use.
type CaptureSettings struct {
	ExposureTime time.Duration
	AnalogueGain float64
	ColourGains  [2]float64
}

func (cs CaptureSettings)String() string {
	return fmt.Sprintf("exp %s, gain %.2f, cg [%.2f %.2f]",
		cs.ExposureTime, cs.AnalogueGain, cs.ColourGains[0], cs.ColourGains[1])
}

// An Output is an image handed to the Encoder: the short exposure
// metering frame ("short"), and the final result ("hdr").
type Output struct {
	Name     string
	Width    int
	Height   int
	Stride   int
	Pix      []byte
	Metadata Metadata
}

// The driver's collaborators. Sensor control, display and file
// encoding all live outside the pipeline.
type FrameSource interface {
	NextFrame(ctx context.Context) (Frame, error)
}

type Controller interface {
	// ConfigureStill switches the camera to still capture with the
	// given settings, returning the geometry of the frames to come.
	ConfigureStill(settings CaptureSettings) (StreamInfo, error)
}

type Encoder interface {
	Encode(out Output) error
}

type Previewer interface {
	ShowPreview(f Frame)
}
