package hdrstack

import(
	"github.com/abworrall/stackhdr/pkg/emath"
)

// CalculateHistogram counts the luma samples, with one bin per possible
// value in [0, DynamicRange).
func (im *WideImage)CalculateHistogram() emath.Histogram {
	bins := make([]uint32, im.DynamicRange)
	if len(bins) == 0 {
		return emath.NewHistogram(bins)
	}

	maxBin := len(bins) - 1
	for _, p := range im.Y() {
		bins[emath.ClampInt(int(p), 0, maxBin)]++
	}
	return emath.NewHistogram(bins)
}
