package main

import(
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/abworrall/stackhdr/pkg/frameio"
	"github.com/abworrall/stackhdr/pkg/pipeline"
)

var(
	fVerbosity       int
	fConfigFile      string
	fNumFrames       int
	fPreviewFrames   int
	fOutputDir       string
	fFormat          string
	fDumpDir         string
	fViewfinderScale float64
	fStrideAlign     int
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fConfigFile, "config", "", "yaml file with HDR tuning (defaults built in)")
	flag.IntVar(&fNumFrames, "frames", 0, "number of frames to accumulate, 1-16 (overrides config)")
	flag.IntVar(&fPreviewFrames, "preview", -1, "number of preview frames before metering (overrides config)")
	flag.StringVar(&fOutputDir, "o", ".", "directory to write short and hdr images into")
	flag.StringVar(&fFormat, "format", "tif", "output image format: tif or png")
	flag.StringVar(&fDumpDir, "dump", "", "directory to dump intermediate images into")
	flag.Float64Var(&fViewfinderScale, "vfscale", 0.5, "size of viewfinder frames, relative to stills")
	flag.IntVar(&fStrideAlign, "stridealign", 32, "align frame rows to this many bytes")
	flag.Parse()

	log.Printf("stackhdr starting\n")
}

func main() {
	cfg := pipeline.DefaultConfig()
	if fConfigFile != "" {
		c, err := pipeline.LoadConfig(fConfigFile)
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
		log.Printf("Loaded base configuration from %s\n", fConfigFile)
	}

	// Override the config file with command line args, if relevant
	if fVerbosity > 0 { cfg.Verbosity = fVerbosity }
	if fNumFrames > 0 { cfg.NumFrames = fNumFrames }
	if fPreviewFrames >= 0 { cfg.PreviewFrames = fPreviewFrames }
	if fDumpDir != "" { cfg.DumpDir = fDumpDir }

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	shots, err := frameio.LoadFilesAndDirs(flag.Args()...)
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range shots {
		log.Printf("Loaded %s\n", s)
	}

	camera, err := frameio.NewFileCamera(shots, fViewfinderScale, fStrideAlign)
	if err != nil {
		log.Fatal(err)
	}
	encoder, err := frameio.NewFileEncoder(fOutputDir, fFormat)
	if err != nil {
		log.Fatal(err)
	}

	driver, err := pipeline.NewDriver(cfg, camera, encoder)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Verbosity > 1 {
		driver.Previewer = logPreviewer{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := driver.Run(ctx, camera); err != nil {
		log.Fatalf("HDR capture failed: %v\n", err)
	}

	log.Printf("Done, wrote %v\n", encoder.Written)
}

type logPreviewer struct{}

func (logPreviewer)ShowPreview(f pipeline.Frame) {
	log.Printf("Preview %dx%d, %s\n", f.Width, f.Height, f.Metadata)
}
