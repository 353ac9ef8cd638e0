package hdrstack

import(
	"fmt"

	"github.com/abworrall/stackhdr/pkg/emath"
)

type TonemapConfig struct {
	Tonemap     emath.Pwl `yaml:"-"`            // filled in per image, by CreateTonemap
	PosStrength emath.Pwl `yaml:"pos_strength"` // gain for detail brighter than the low pass image
	NegStrength emath.Pwl `yaml:"neg_strength"` // gain for detail darker than the low pass image
}

func (c TonemapConfig)Validate() error {
	if c.PosStrength.Empty() || c.NegStrength.Empty() {
		return fmt.Errorf("tonemap strength curves must not be empty")
	}
	return nil
}

// Tonemap compresses the image in place. The idea is that we tonemap
// the low pass image `lp`, and then add back the high pass signal (the
// difference between this image and lp) with some amount of gain.
// Chroma gets scaled by however much the luma moved, so the colours
// keep roughly the same saturation.
func (im *WideImage)Tonemap(lp *WideImage, cfg TonemapConfig) {
	// Make LUTs for the all the Pwls, it'll be much quicker
	tonemapLut     := cfg.Tonemap.GenerateIntLut(im.DynamicRange)
	posStrengthLut := cfg.PosStrength.GenerateLut(im.DynamicRange)
	negStrengthLut := cfg.NegStrength.GenerateLut(im.DynamicRange)

	w, h := im.Width, im.Height
	maxval := im.MaxVal()
	// Chroma is de-biased, so it gets half the range either side of 0
	chromaMin, chromaMax := -im.DynamicRange/2, im.DynamicRange/2 - 1

	Y, U, V := im.Y(), im.U(), im.V()
	lpY := lp.Y()

	for y:=0; y<h; y++ {
		offY := y * w
		offUV := (y / 2) * (w / 2)
		for x:=0; x<w; x, offY = x+1, offY+1 {
			yLpOrig := emath.ClampInt(int(lpY[offY]), 0, maxval)
			yHp := int(Y[offY]) - yLpOrig
			yLpMapped := tonemapLut[yLpOrig]

			strength := negStrengthLut[yLpOrig]
			if yHp > 0 {
				strength = posStrengthLut[yLpOrig]
			}

			yFinal := emath.ClampInt(yLpMapped + int(strength * float64(yHp)), 0, maxval)
			Y[offY] = int16(yFinal)

			if x&1 == 0 && y&1 == 0 && x/2 < w/2 && y/2 < h/2 {
				f := float32(yFinal + 1) / float32(yLpOrig + 1)
				U[offUV] = int16(emath.ClampInt(int(float32(U[offUV]) * f), chromaMin, chromaMax))
				V[offUV] = int16(emath.ClampInt(int(float32(V[offUV]) * f), chromaMin, chromaMax))
				offUV++
			}
		}
	}
}
