package hdrstack

import(
	"fmt"
	"math"
	"sync"

	"github.com/abworrall/stackhdr/pkg/emath"
)

type LpFilterConfig struct {
	Strength  float64   `yaml:"strength"`  // weight of a pixel's own value, vs its neighbours
	Threshold emath.Pwl `yaml:"threshold"` // neighbour differences are measured in units of threshold(pixel)/10
}

func (c LpFilterConfig)Validate() error {
	if !(c.Strength > 0) {
		return fmt.Errorf("lp filter strength %g must be > 0", c.Strength)
	}
	if c.Threshold.Empty() {
		return fmt.Errorf("lp filter threshold curve is empty")
	}
	for _, pt := range c.Threshold.Points {
		if !(pt.Y > 0) {
			return fmt.Errorf("lp filter threshold %g at %g must be > 0", pt.Y, pt.X)
		}
	}
	return nil
}

const(
	filterSize    = 1  // how many pixels in from each edge the filter starts
	numWeights    = 31
)

// weights[d] = e^(-d^2/100), i.e. e^(-x^2) for 0 <= x <= 3 in steps of 0.1
func diffusionWeights() []float64 {
	weights := make([]float64, numWeights)
	for d := range weights {
		weights[d] = math.Exp(-float64(d*d) / 100.0)
	}
	return weights
}

// A diffusionPass is one direction of the IIR filter: the filtered
// values, and the total weight that produced each of them.
type diffusionPass struct {
	pixels     emath.FloatGrid
	weightSums emath.FloatGrid
}

type passParams struct {
	weights   []float64
	threshold []float64
	strength  float64
}

// Each filtered pixel is a blend of its own value with the already
// filtered values of the four neighbours that the scan has visited
// (well, three visited and one diagonal). A neighbour's weight falls
// off with its difference from the pixel, relative to the threshold,
// which is what keeps edges sharp.
func (im *WideImage)diffuse(p passParams, reverse bool) diffusionPass {
	w, h := im.Width, im.Height
	out := diffusionPass{
		pixels:     emath.NewFloatGrid(w, h),
		weightSums: emath.NewFloatGrid(w, h),
	}
	if w <= 2*filterSize || h <= 2*filterSize || len(p.threshold) == 0 {
		return out
	}

	filtered := out.pixels.Values()
	sums := out.weightSums.Values()
	luma := im.Y()

	// Forward scans top-left to bottom-right, reverse the other way round.
	deltas := []int{-w - 1, -w, -w + 1, -1}
	yStart, yEnd, xStart, xEnd, step := filterSize, h, filterSize, w, 1
	if reverse {
		deltas = []int{w + 1, w, w - 1, 1}
		yStart, yEnd, xStart, xEnd, step = h-1-filterSize, -1, w-1-filterSize, -1, -1
	}

	maxLut := len(p.threshold) - 1
	for y:=yStart; y!=yEnd; y+=step {
		off := y*w + xStart
		for x:=xStart; x!=xEnd; x, off = x+step, off+step {
			pixel := float64(luma[off])
			thresh := p.threshold[emath.ClampInt(int(luma[off]), 0, maxLut)]
			pixelWtSum, wtSum := pixel * p.strength, p.strength

			for _, delta := range deltas {
				neighbour := filtered[off + delta]
				wt := 0.0
				if idx := math.Abs(neighbour - pixel) * 10 / thresh; idx < float64(len(p.weights)) {
					wt = p.weights[int(idx)]
				}
				pixelWtSum += wt * neighbour
				wtSum += wt
			}

			filtered[off] = pixelWtSum / wtSum
			sums[off] = wtSum
		}
	}

	return out
}

// LpFilter returns a smoothed but vaguely edge-preserving version of the
// luma plane. We run a forwards and a reverse pass of an IIR filter in
// parallel, and combine them weighted by how much support each one had
// at each pixel.
//
// The result only has a luma plane; chroma is not filtered. Pixels
// within filterSize of the edges are left at zero.
func (im *WideImage)LpFilter(cfg LpFilterConfig) *WideImage {
	// Computing the threshold per pixel would be slow
	params := passParams{
		weights:   diffusionWeights(),
		threshold: cfg.Threshold.GenerateLut(im.DynamicRange),
		strength:  cfg.Strength,
	}

	var fwd diffusionPass
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		fwd = im.diffuse(params, false)
	}()
	rev := im.diffuse(params, true)
	wg.Wait()

	return combinePasses(im, fwd, rev)
}

func combinePasses(im *WideImage, fwd, rev diffusionPass) *WideImage {
	w, h := im.Width, im.Height
	out := &WideImage{
		Width:        w,
		Height:       h,
		Pixels:       make([]int16, w*h),
		DynamicRange: im.DynamicRange,
	}

	fp, fw := fwd.pixels.Values(), fwd.weightSums.Values()
	rp, rw := rev.pixels.Values(), rev.weightSums.Values()

	for y:=filterSize; y<h-filterSize; y++ {
		off := y*w + filterSize
		for x:=filterSize; x<w-filterSize; x, off = x+1, off+1 {
			v := (fp[off]*fw[off] + rp[off]*rw[off]) / (fw[off] + rw[off])
			out.Pixels[off] = int16(math.Round(v))
		}
	}

	return out
}
