package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
)

// A FloatGrid is a width x height grid of floats, stored row by row.
// The filter passes use them as scratch planes, and they can be dumped
// as images for debugging.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 { return 0 }
	return len(fg.values) / fg.stride
}

// Values exposes the backing slice, for passes that walk the grid by offset.
func (fg *FloatGrid)Values() []float64       { return fg.values }

func (fg *FloatGrid)MinMax() (float64, float64) {
	min := math.MaxFloat64
	max := -1.0 * min
	for _, v := range fg.values {
		if v > max { max = v }
		if v < min { min = v }
	}
	return min, max
}

func (fg *FloatGrid)Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// ToImage renders a grayscale image, based on the range of values in
// the grid, gamma scaling the gray to look normal for human vision.
func (fg *FloatGrid)ToImage() *image.RGBA64 {
	min, max := fg.MinMax()
	span := max - min
	if span <= 0 { span = 1 }

	img := image.NewRGBA64(image.Rect(0, 0, fg.Dx(), fg.Dy()))
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			gray := uint16(math.Round(GammaExpand_F64((fg.Get(x,y) - min) / span) * 65535.0))
			img.SetRGBA64(x, y, color.RGBA64{R: gray, G: gray, B: gray, A: 0xFFFF})
		}
	}
	return img
}

// ToImg saves the grid as a PNG, with a title written into the top corner.
func (fg *FloatGrid)ToImg(title, filename string) error {
	dc := gg.NewContextForImage(fg.ToImage())
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 10, 20)
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("FloatGrid.ToImg '%s': %w", filename, err)
	}
	return nil
}
