package hdrstack

import(
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffusionWeights(t *testing.T) {
	weights := diffusionWeights()
	require.Len(t, weights, 31)
	require.Equal(t, 1.0, weights[0])
	require.InDelta(t, math.Exp(-1), weights[10], 1e-12)
	require.InDelta(t, math.Exp(-9), weights[30], 1e-12)
	for i:=1; i<len(weights); i++ {
		require.Less(t, weights[i], weights[i-1])
	}
}

func TestLpFilterFlatImage(t *testing.T) {
	w, h := 32, 24
	f := makeFrame(w, h, w, flat(128), 128, 128)
	im := NewWideImage(w, h)
	for i:=0; i<8; i++ {
		im.Accumulate(f, w)
	}
	require.Equal(t, 2048, im.DynamicRange)

	lp := im.LpFilter(testLpConfig())

	require.Equal(t, im.DynamicRange, lp.DynamicRange)
	// Only luma gets filtered; the chroma planes are not carried over
	require.Len(t, lp.Pixels, w*h)
	require.False(t, lp.HasChroma())

	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			v := lp.Pixels[y*w + x]
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				require.Equal(t, int16(0), v, "border at %d,%d", x, y)
			} else {
				require.Equal(t, int16(1024), v, "interior at %d,%d", x, y)
			}
		}
	}
}

func TestLpFilterWeightsNeverZero(t *testing.T) {
	w, h := 40, 30
	rnd := rand.New(rand.NewSource(1))
	im := lumaImage(w, h, 4096, func(x, y int) int16 { return int16(rnd.Intn(4096)) })

	cfg := testLpConfig()
	params := passParams{
		weights:   diffusionWeights(),
		threshold: cfg.Threshold.GenerateLut(im.DynamicRange),
		strength:  cfg.Strength,
	}
	fwd := im.diffuse(params, false)
	rev := im.diffuse(params, true)

	for y:=1; y<h-1; y++ {
		for x:=1; x<w-1; x++ {
			require.GreaterOrEqual(t, fwd.weightSums.Get(x, y), cfg.Strength)
			require.GreaterOrEqual(t, rev.weightSums.Get(x, y), cfg.Strength)
		}
	}

	lp := combinePasses(im, fwd, rev)
	for y:=1; y<h-1; y++ {
		for x:=1; x<w-1; x++ {
			v := lp.Pixels[y*w + x]
			require.True(t, v >= 0 && v < 4096, "%d at %d,%d", v, x, y)
		}
	}
}

func TestLpFilterPreservesEdges(t *testing.T) {
	w, h := 32, 16
	edge := w / 2
	f := makeFrame(w, h, w, func(x, y int) uint8 {
		if x < edge { return 0 }
		return 255
	}, 128, 128)
	im := accumulated(w, h, w, f, f)
	require.Equal(t, 512, im.DynamicRange)

	lp := im.LpFilter(testLpConfig())

	rawStep := float64(im.Y()[edge] - im.Y()[edge-1])
	for y:=1; y<h-1; y++ {
		step := float64(lp.Pixels[y*w + edge] - lp.Pixels[y*w + edge-1])
		require.GreaterOrEqual(t, step, 0.7*rawStep, "row %d", y)
	}
}

func TestLpFilterSmoothsTexture(t *testing.T) {
	w, h := 48, 48
	im := lumaImage(w, h, 4096, func(x, y int) int16 {
		if (x+y)&1 == 0 { return 1004 }
		return 996
	})

	lp := im.LpFilter(testLpConfig())

	sumDev, n := 0.0, 0
	for y:=1; y<h-1; y++ {
		for x:=1; x<w-1; x++ {
			dev := math.Abs(float64(lp.Pixels[y*w + x]) - 1000)
			require.LessOrEqual(t, dev, 4.0)
			sumDev += dev
			n++
		}
	}
	require.Less(t, sumDev/float64(n), 1.0)
}

func TestLpFilterTinyImage(t *testing.T) {
	im := lumaImage(2, 2, 256, func(x, y int) int16 { return 200 })
	lp := im.LpFilter(testLpConfig())
	require.Equal(t, []int16{0, 0, 0, 0}, lp.Pixels)
}
