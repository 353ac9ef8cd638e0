package hdrstack

import(
	"errors"
	"fmt"

	"github.com/abworrall/stackhdr/pkg/emath"
)

var ErrDegenerateTonemap = errors.New("degenerate tonemap curve")

// TonemapCurveConfig says where CreateTonemap should move the
// statistically interesting points of the image.
type TonemapCurveConfig struct {
	FixedQ    float64   `yaml:"fixed_q"`    // this quantile maps to itself
	Q50Curve  emath.Pwl `yaml:"q50_curve"`  // where the median should move to
	Q25Factor float64   `yaml:"q25_factor"` // the lower quartile's target, relative to the median's
}

func (c TonemapCurveConfig)Validate() error {
	if !(c.FixedQ > 0 && c.FixedQ < 0.25) {
		return fmt.Errorf("fixed_q %g must be in (0, 0.25)", c.FixedQ)
	}
	if c.Q50Curve.Empty() {
		return fmt.Errorf("q50_curve is empty")
	}
	if !(c.Q25Factor > 0) {
		return fmt.Errorf("q25_factor %g must be > 0", c.Q25Factor)
	}
	return nil
}

// CreateTonemap builds the curve that Tonemap applies to the low pass
// image `lp`. It has five points:
//   - (0,0)
//   - the FixedQ quantile stays put, which keeps some contrast at the
//     bottom of the range
//   - the lower quartile moves to Q25Factor times the median's target
//   - the median moves according to Q50Curve
//   - the max value stays put
//
// If the histogram is so lopsided that those quantiles are not strictly
// increasing (e.g. a blown out image), the curve can't be built and we
// return ErrDegenerateTonemap.
func CreateTonemap(lp *WideImage, cfg TonemapCurveConfig) (emath.Pwl, error) {
	maxval := float64(lp.MaxVal())
	histogram := lp.CalculateHistogram()

	qFixed   := histogram.Quantile(cfg.FixedQ)
	q50      := histogram.Quantile(0.5)
	target50 := cfg.Q50Curve.Eval(q50)
	q25      := histogram.Quantile(0.25)
	target25 := target50 * cfg.Q25Factor

	pts := []emath.Point{
		{X: 0,      Y: 0},
		{X: qFixed, Y: qFixed},
		{X: q25,    Y: target25},
		{X: q50,    Y: target50},
		{X: maxval, Y: maxval},
	}

	tonemap, err := emath.NewPwl(pts...)
	if err != nil {
		return emath.Pwl{}, fmt.Errorf("%w (q%.0f=%.2f, q25=%.2f, q50=%.2f, max=%.0f): %w",
			ErrDegenerateTonemap, cfg.FixedQ*100, qFixed, q25, q50, maxval, err)
	}

	return tonemap, nil
}
