package hdrstack

import(
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractRoundTrip(t *testing.T) {
	w, h, stride := 10, 6, 16
	lumaAt := func(x, y int) uint8 { return uint8(20*x + y) }
	f := makeFrame(w, h, stride, lumaAt, 100, 200)

	// One frame, straight back out again
	im := accumulated(w, h, stride, f)
	out := im.Extract(stride)
	require.Len(t, out, stride*h*3/2)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			require.Equal(t, lumaAt(x, y), out[y*stride + x])
		}
		require.Equal(t, uint8(0), out[y*stride + w], "padding is left zero")
	}

	// Sixteen of the same frame reduce to the same thing
	im = NewWideImage(w, h)
	for i:=0; i<16; i++ {
		im.Accumulate(f, stride)
	}
	out16 := im.Extract(stride)
	require.Equal(t, out, out16)

	u := out[stride*h]
	v := out[stride*h + (stride/2)*(h/2)]
	require.Equal(t, uint8(100), u)
	require.Equal(t, uint8(200), v)
}

func TestExtractClampsChroma(t *testing.T) {
	w, h := 2, 2
	im := lumaImage(w, h, 256, func(x, y int) int16 { return 50 })
	im.U()[0], im.V()[0] = 300, -300

	out := im.Extract(w)
	require.Equal(t, []byte{50, 50, 50, 50, 255, 0}, out)
}

func TestWriteToHDR(t *testing.T) {
	w, h := 8, 8
	f := makeFrame(w, h, w, func(x, y int) uint8 { return uint8(x * 30) }, 90, 160)
	im := accumulated(w, h, w, f, f)

	c := im.YUVAt(7, 0)
	require.InDelta(t, 420.0/512.0, c.Y, 1e-9)

	filename := filepath.Join(t.TempDir(), "acc.hdr")
	require.NoError(t, im.WriteToHDR(filename))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(w*h))

	// A luma-only image renders as gray
	lp := im.LpFilter(testLpConfig())
	g := lp.YUVAt(3, 3)
	require.Equal(t, 0.0, g.U)
	require.Equal(t, 0.0, g.V)
	require.NoError(t, lp.WriteToHDR(filepath.Join(t.TempDir(), "lp.hdr")))
}

func TestExtractOddHeight(t *testing.T) {
	w, h, stride := 4, 3, 6
	f := makeFrame(w, h, stride, flat(90), 70, 190)

	out := accumulated(w, h, stride, f).Extract(stride)
	require.Len(t, out, stride*h*3/2)

	// Chroma planes are (stride/2)*(h/2) bytes each, back to back
	planeU := out[stride*h:]
	planeV := planeU[(stride/2)*(h/2):]
	require.Equal(t, []byte{70, 70}, planeU[:2])
	require.Equal(t, []byte{190, 190}, planeV[:2])
}
