package pipeline

import(
	"fmt"
	"log"

	"github.com/codahale/hdrhistogram"
)

// FrameStats summarizes the luma of an 8-bit frame.
type FrameStats struct {
	Min, Max   int64
	Mean       float64
	Q10, Q50   int64
	Q90        int64
	Count      int64
	Dropped    int64 // samples the histogram couldn't record
}

func (s FrameStats)String() string {
	return fmt.Sprintf("luma[n=%d min=%d q10=%d q50=%d mean=%.1f q90=%d max=%d]",
		s.Count, s.Min, s.Q10, s.Q50, s.Mean, s.Q90, s.Max)
}

// LumaStats computes summary statistics over the luma plane of a YUV420
// buffer.
func LumaStats(pix []byte, width, height, stride int) FrameStats {
	h := hdrhistogram.New(1, 255, 3)
	dropped := 0
	for y:=0; y<height; y++ {
		for _, v := range pix[y*stride : y*stride+width] {
			// Bytes never exceed the histogram's 255 max, so this shouldn't fail
			if err := h.RecordValue(int64(v)); err != nil {
				if dropped == 0 {
					log.Printf("LumaStats: %v\n", err)
				}
				dropped++
			}
		}
	}

	return FrameStats{
		Min:     h.Min(),
		Max:     h.Max(),
		Mean:    h.Mean(),
		Q10:     h.ValueAtQuantile(10),
		Q50:     h.ValueAtQuantile(50),
		Q90:     h.ValueAtQuantile(90),
		Count:   h.TotalCount(),
		Dropped: int64(dropped),
	}
}
