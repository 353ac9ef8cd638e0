package hdrstack

import(
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/stackhdr/pkg/ecolor"
)

// Implement image.Image
func (im *WideImage)ColorModel() color.Model { return hdrcolor.RGBModel }
func (im *WideImage)Bounds() image.Rectangle { return image.Rect(0, 0, im.Width, im.Height) }
func (im *WideImage)At(x, y int) color.Color { return im.HDRAt(x, y) }

// Implement hdr.Image
func (im *WideImage)HDRAt(x, y int) hdrcolor.Color { return im.YUVAt(x, y).ToLinearRGB() }
func (im *WideImage)Size() int                     { return im.Width * im.Height }

// YUVAt returns the normalized color at (x,y). Images without chroma
// planes come out gray.
func (im *WideImage)YUVAt(x, y int) ecolor.YUV {
	max := float64(im.DynamicRange)
	if max <= 0 {
		return ecolor.YUV{}
	}

	luma := float64(im.Pixels[y*im.Width + x])
	u, v := 0.0, 0.0
	if im.HasChroma() && x/2 < im.Width/2 && y/2 < im.Height/2 {
		off := (y/2) * (im.Width/2) + x/2
		u, v = float64(im.U()[off]), float64(im.V()[off])
	}

	return ecolor.NewYUV(luma, u, v, max)
}

// WriteToHDR outputs a Radiance HDR image. You can load this into
// photoshop or other HDR tools, to see what the accumulator looked like.
func (im *WideImage)WriteToHDR(filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("WideImage.WriteToHDR, open+w '%s': %w", filename, err)
	} else {
		defer writer.Close()
		err := rgbe.Encode(writer, im)
		if err != nil {
			log.Printf("WideImage.WriteToHDR, encoding RGBE file: %v\n", err)
		}
		return err
	}
}
