package pipeline

import(
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExposureAdjustment(t *testing.T) {
	adjust := DefaultConfig().ExposureAdjust

	tests := []struct {
		name string
		luma uint8
		want float64
	}{
		{"black", 0, 1.975},   // q10 = 0.1
		{"dark", 2, 1.49167},  // q10 = 2.1
		{"normal", 128, 1.0},  // q10 is way past the end of the curve
	}

	for _, test := range tests {
		f := yuvFrame(10, 10, 16, gray(test.luma))
		require.InDelta(t, test.want, ExposureAdjustment(f, adjust), 1e-4, test.name)
	}
}

func TestExposureAdjustmentIgnoresPadding(t *testing.T) {
	// Rows are 6 wide, the padding is all zero
	f := yuvFrame(6, 4, 32, gray(200))
	require.Equal(t, 1.0, ExposureAdjustment(f, DefaultConfig().ExposureAdjust))
}

func TestStillSettings(t *testing.T) {
	md := Metadata{ExposureTime: 10 * time.Millisecond, AnalogueGain: 2, DigitalGain: 1.5, ColourGains: [2]float64{1.8, 1.4}}

	cs := StillSettings(md, 1.5)
	require.Equal(t, 15 * time.Millisecond, cs.ExposureTime)
	require.Equal(t, 3.0, cs.AnalogueGain)
	require.Equal(t, [2]float64{1.8, 1.4}, cs.ColourGains)
	require.InDelta(t, math.Log2(1.5), cs.StopsOver(md), 1e-9)

	// Folding digital gain into analogue gain doesn't change anything
	require.InDelta(t, 0, StillSettings(md, 1.0).StopsOver(md), 1e-9)
	require.Equal(t, 0.0, cs.StopsOver(Metadata{}))
}

func TestLumaStats(t *testing.T) {
	f := yuvFrame(16, 16, 20, func(x, y int) uint8 { return uint8(y*16 + x) })
	f.Pix[16] = 77 // padding

	s := LumaStats(f.Pix, f.Width, f.Height, f.Stride)
	require.Equal(t, int64(256), s.Count)
	require.Equal(t, int64(0), s.Min)
	require.Equal(t, int64(255), s.Max)
	require.InDelta(t, 127.5, s.Mean, 0.5)
	require.InDelta(t, 127, s.Q50, 1)
	require.InDelta(t, 25, s.Q10, 1)
	require.InDelta(t, 229, s.Q90, 1)
	require.Contains(t, s.String(), "n=256")
	require.Equal(t, int64(0), s.Dropped)

	// The extremes of the byte range both get recorded
	f = yuvFrame(8, 8, 8, func(x, y int) uint8 { return uint8(255 * (x & 1)) })
	s = LumaStats(f.Pix, f.Width, f.Height, f.Stride)
	require.Equal(t, int64(64), s.Count)
	require.Equal(t, int64(0), s.Dropped)
	require.Equal(t, int64(0), s.Min)
	require.Equal(t, int64(255), s.Max)
}
