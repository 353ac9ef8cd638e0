package pipeline

import(
	"fmt"
	"log"
	"path/filepath"

	"github.com/abworrall/stackhdr/pkg/hdrstack"
)

// Merge does the HDR processing on a finished accumulator, returning an
// 8-bit YUV420 buffer with the given stride. The accumulator is
// modified in place, and is no use afterwards.
//
// If the image is too degenerate to build a tonemap (e.g. it's all
// blown out), we return an error rather than produce garbage.
func Merge(acc *hdrstack.WideImage, cfg Config, stride int) ([]byte, error) {
	if acc.DynamicRange <= 0 {
		return nil, fmt.Errorf("merge: nothing accumulated")
	}

	// Values are tuned for ScaleToFrames frames, so scale acc up to match
	target := cfg.ScaleToFrames * hdrstack.MaxFrameContribution
	acc.Scale(float64(target) / float64(acc.DynamicRange))
	maybeDumpHDR(cfg, acc, "accumulated.hdr")

	lp := acc.LpFilter(cfg.LpFilter)
	maybeDumpLuma(cfg, lp, "lowpass", "lowpass.png")

	tonemap, err := hdrstack.CreateTonemap(lp, cfg.TonemapCurve)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if cfg.Verbosity > 0 {
		log.Printf("Tonemap: %s\n", tonemap)
	}

	tmCfg := cfg.Tonemap
	tmCfg.Tonemap = tonemap
	acc.Tonemap(lp, tmCfg)
	maybeDumpHDR(cfg, acc, "tonemapped.hdr")

	return acc.Extract(stride), nil
}

func maybeDumpHDR(cfg Config, im *hdrstack.WideImage, name string) {
	if cfg.DumpDir == "" {
		return
	}
	if err := im.WriteToHDR(filepath.Join(cfg.DumpDir, name)); err != nil {
		log.Printf("dump %s: %v\n", name, err)
	}
}

func maybeDumpLuma(cfg Config, im *hdrstack.WideImage, title, name string) {
	if cfg.DumpDir == "" {
		return
	}
	grid := im.LumaGrid()
	if cfg.Verbosity > 0 {
		log.Printf("%s: %s\n", title, grid.Stats())
	}
	if err := grid.ToImg(title, filepath.Join(cfg.DumpDir, name)); err != nil {
		log.Printf("dump %s: %v\n", name, err)
	}
}
