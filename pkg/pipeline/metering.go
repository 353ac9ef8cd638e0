package pipeline

import(
	"math"
	"time"

	"github.com/abworrall/stackhdr/pkg/emath"
)

// ExposureAdjustment looks at the luma of a metering frame. We meter
// for the highlights, which stops almost everything from blowing out;
// but if the 10% point of the histogram is crazily low then we're
// better off boosting the exposure a bit.
func ExposureAdjustment(f Frame, adjust emath.Pwl) float64 {
	var bins [256]uint32
	for y:=0; y<f.Height; y++ {
		for _, v := range f.Pix[y*f.Stride : y*f.Stride+f.Width] {
			bins[v]++
		}
	}

	hist := emath.NewHistogram(bins[:])
	q10 := hist.Quantile(0.1)
	return adjust.Eval(adjust.Domain().Clip(q10))
}

// StillSettings derives the capture settings for the accumulated
// frames from the metering frame's metadata. Digital gain gets folded
// into the analogue gain.
func StillSettings(md Metadata, expAdjust float64) CaptureSettings {
	return CaptureSettings{
		ExposureTime: time.Duration(float64(md.ExposureTime) * expAdjust),
		AnalogueGain: md.AnalogueGain * md.DigitalGain,
		ColourGains:  md.ColourGains,
	}
}

// StopsOver is how many stops more light the settings let in than the
// frame that was metered; a stop being a doubling of exposure x gain.
func (cs CaptureSettings)StopsOver(md Metadata) float64 {
	before := md.ExposureTime.Seconds() * md.AnalogueGain * md.DigitalGain
	after := cs.ExposureTime.Seconds() * cs.AnalogueGain
	if before <= 0 || after <= 0 {
		return 0
	}
	return math.Log2(after / before)
}
