package pipeline

import(
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/stackhdr/pkg/emath"
	"github.com/abworrall/stackhdr/pkg/hdrstack"
)

var ErrBadConfig = errors.New("bad config")

// MaxFrames bounds NumFrames and ScaleToFrames: the default curves are
// tuned for a 4096-value range, which is MaxFrames frames of
// MaxFrameContribution each.
const MaxFrames = 16

/* Example config file (any missing values keep their defaults) ...

num_frames: 8
lp_filter:
  strength: 0.2
  threshold: [[0, 10], [2048, 204.8], [4095, 204.8]]
tonemap_curve:
  fixed_q: 0.03
  q25_factor: 0.667
dump_dir: /tmp/hdr-debug

*/

type Config struct {
	Verbosity      int                         `yaml:"verbosity"`

	NumFrames      int                         `yaml:"num_frames"`      // capture and combine this many frames
	PreviewFrames  int                         `yaml:"preview_frames"`  // frames shown before we meter
	ScaleToFrames  int                         `yaml:"scale_to_frames"` // the tuning below assumes this many frames

	LpFilter       hdrstack.LpFilterConfig     `yaml:"lp_filter"`
	TonemapCurve   hdrstack.TonemapCurveConfig `yaml:"tonemap_curve"`
	Tonemap        hdrstack.TonemapConfig      `yaml:"tonemap"`
	ExposureAdjust emath.Pwl                   `yaml:"exposure_adjust"` // exposure boost, given the metering frame's q10

	DumpDir        string                      `yaml:"dump_dir"` // if set, write intermediate images here
}

func DefaultConfig() Config {
	return Config{
		NumFrames:     8,
		PreviewFrames: 60,
		ScaleToFrames: MaxFrames,
		LpFilter: hdrstack.LpFilterConfig{
			Strength:  0.2,
			Threshold: emath.MustPwl(
				emath.Point{X: 0,    Y: 10},
				emath.Point{X: 2048, Y: 2048 * 0.1},
				emath.Point{X: 4095, Y: 2048 * 0.1},
			),
		},
		TonemapCurve: hdrstack.TonemapCurveConfig{
			FixedQ:    0.03,
			Q50Curve:  emath.MustPwl(
				emath.Point{X: 0,    Y: 400},
				emath.Point{X: 30,   Y: 500},
				emath.Point{X: 100,  Y: 600},
				emath.Point{X: 200,  Y: 800},
				emath.Point{X: 300,  Y: 1000},
				emath.Point{X: 2048, Y: 2048},
				emath.Point{X: 4095, Y: 3072},
			),
			Q25Factor: 0.667,
		},
		Tonemap: hdrstack.TonemapConfig{
			PosStrength: emath.MustPwl(
				emath.Point{X: 0,    Y: 6.0},
				emath.Point{X: 1024, Y: 2.0},
				emath.Point{X: 4095, Y: 2.0},
			),
			NegStrength: emath.MustPwl(
				emath.Point{X: 0,    Y: 4.0},
				emath.Point{X: 1024, Y: 1.5},
				emath.Point{X: 4095, Y: 1.5},
			),
		},
		ExposureAdjust: emath.MustPwl(
			emath.Point{X: 0,   Y: 2.0},
			emath.Point{X: 2.0, Y: 1.5},
			emath.Point{X: 8.0, Y: 1.0},
		),
	}
}

// Validate checks the config is something the pipeline can run with.
func (c Config)Validate() error {
	if c.NumFrames < 1 || c.NumFrames > MaxFrames {
		return fmt.Errorf("%w: num_frames %d must be in [1,%d]", ErrBadConfig, c.NumFrames, MaxFrames)
	}
	if c.ScaleToFrames < 1 || c.ScaleToFrames > MaxFrames {
		return fmt.Errorf("%w: scale_to_frames %d must be in [1,%d]", ErrBadConfig, c.ScaleToFrames, MaxFrames)
	}
	if c.PreviewFrames < 0 {
		return fmt.Errorf("%w: preview_frames %d must be >= 0", ErrBadConfig, c.PreviewFrames)
	}
	if err := c.LpFilter.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	if err := c.TonemapCurve.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	if err := c.Tonemap.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	if c.ExposureAdjust.Empty() {
		return fmt.Errorf("%w: exposure_adjust curve is empty", ErrBadConfig)
	}
	return nil
}

func NewConfigFromYaml(b []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return c, fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	return c, c.Validate()
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %w", filename, err)
	}

	c, err := NewConfigFromYaml(contents)
	if err != nil {
		return c, fmt.Errorf("config %s: %w", filename, err)
	}
	return c, nil
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Printf("Can't marshal config yaml: %v\n", err)
		return ""
	}
	return string(b)
}
