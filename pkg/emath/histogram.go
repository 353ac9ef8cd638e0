package emath

// A Histogram counts how many samples fell into each integer bin
// [0, len(bins)). It keeps the cumulative counts, so quantile lookups
// are a binary search.
type Histogram struct {
	cumulative []uint64 // cumulative[i] is the number of samples in bins [0,i)
}

func NewHistogram(bins []uint32) Histogram {
	cumulative := make([]uint64, len(bins)+1)
	for i, n := range bins {
		cumulative[i+1] = cumulative[i] + uint64(n)
	}
	return Histogram{cumulative: cumulative}
}

func (h Histogram)Bins() int     { return len(h.cumulative) - 1 }
func (h Histogram)Total() uint64 { return h.cumulative[len(h.cumulative)-1] }

// Quantile returns the (fractional) value below which a fraction q of
// the samples lie. Within the bin that contains the quantile we
// interpolate linearly, to get sub-bin precision.
func (h Histogram)Quantile(q float64) float64 {
	if h.Bins() == 0 {
		return 0
	}
	if q < 0 { q = 0 }
	if q > 1 { q = 1 }

	item := uint64(q * float64(h.Total()))

	// Find the first bin whose upper cumulative count exceeds item
	first, last := 0, h.Bins()-1
	for first < last {
		middle := (first + last) / 2
		if h.cumulative[middle+1] > item {
			last = middle
		} else {
			first = middle + 1
		}
	}

	lo, hi := h.cumulative[first], h.cumulative[first+1]
	frac := 0.0
	if hi != lo {
		frac = float64(item - lo) / float64(hi - lo)
	}

	return float64(first) + frac
}
