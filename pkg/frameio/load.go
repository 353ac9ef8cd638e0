package frameio

import(
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"

	"github.com/abworrall/stackhdr/pkg/pipeline"
)

// A Shot is one image file, plus the exposure info from its EXIF.
type Shot struct {
	LoadFilename string
	Image        image.Image
	Metadata     pipeline.Metadata
}

func (s Shot)Filename() string { return filepath.Base(s.LoadFilename) }

func (s Shot)String() string {
	return fmt.Sprintf("%s: %s, %s", s.Filename(), s.Image.Bounds(), s.Metadata)
}

var imageExtensions = map[string]bool{".tif": true, ".tiff": true, ".png": true, ".jpg": true, ".jpeg": true}

// LoadFilesAndDirs loads every image it can find in the args, recursing
// into directories. The shots come back sorted by filename. Files are
// decoded concurrently; the first one that fails aborts the load.
func LoadFilesAndDirs(args ...string) ([]Shot, error) {
	filenames, err := findImageFiles(args...)
	if err != nil {
		return nil, err
	}
	sort.Strings(filenames)

	shots := make([]Shot, len(filenames))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, filename := range filenames {
		i, filename := i, filename
		g.Go(func() error {
			shot, err := LoadShot(filename)
			if err != nil {
				return fmt.Errorf("loadfile %s: %w", filename, err)
			}
			shots[i] = shot
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return shots, nil
}

func findImageFiles(args ...string) ([]string, error) {
	filenames := []string{}
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return nil, fmt.Errorf("load %s: %w", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return nil, fmt.Errorf("readdir %s: %w", arg, err)
			}
			for _, content := range contents {
				more, err := findImageFiles(filepath.Join(arg, content.Name()))
				if err != nil {
					return nil, fmt.Errorf("load %s: %w", arg, err)
				}
				filenames = append(filenames, more...)
			}

		case imageExtensions[strings.ToLower(filepath.Ext(arg))]:
			filenames = append(filenames, arg)
		}
	}
	return filenames, nil
}

func LoadShot(filename string) (Shot, error) {
	s := Shot{LoadFilename: filename, Metadata: DefaultMetadata()}

	if md, err := loadExif(filename); err != nil {
		log.Printf("%s: no usable EXIF, assuming %s (%v)\n", filepath.Base(filename), s.Metadata, err)
	} else {
		s.Metadata = md
	}

	reader, err := os.Open(filename)
	if err != nil {
		return s, fmt.Errorf("open+r img '%s': %w", filename, err)
	}
	defer reader.Close()

	img, _, err := image.Decode(reader)
	if err != nil {
		return s, fmt.Errorf("image decoding '%s': %w", filename, err)
	}
	s.Image = img

	return s, nil
}

// DefaultMetadata is used for images without EXIF.
func DefaultMetadata() pipeline.Metadata {
	return pipeline.Metadata{
		ExposureTime: 10 * time.Millisecond,
		AnalogueGain: 1.0,
		DigitalGain:  1.0,
		ColourGains:  [2]float64{1.0, 1.0},
	}
}

// Gain is derived from the ISO, assuming ISO100 is unity gain.
func loadExif(filename string) (pipeline.Metadata, error) {
	md := DefaultMetadata()

	reader, err := os.Open(filename)
	if err != nil {
		return md, fmt.Errorf("open+r exif '%s': %w", filename, err)
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return md, fmt.Errorf("exif parsing '%s': %w", filename, err)
	}

	if tag, err := ex.Get(exif.ExposureTime); err != nil {
		return md, fmt.Errorf("exif ExposureTime '%s': %w", filename, err)
	} else if num, denom, err := tag.Rat2(0); err != nil {
		return md, fmt.Errorf("exif ExposureTime '%s': %w", filename, err)
	} else if denom == 0 {
		return md, fmt.Errorf("exif ExposureTime '%s': zero denominator", filename)
	} else {
		md.ExposureTime = time.Duration(num) * time.Second / time.Duration(denom)
	}

	if tag, err := ex.Get(exif.ISOSpeedRatings); err != nil {
		return md, fmt.Errorf("exif ISO '%s': %w", filename, err)
	} else if val, err := tag.Int64(0); err != nil {
		return md, fmt.Errorf("exif ISO '%s': %w", filename, err)
	} else if val > 0 {
		md.AnalogueGain = float64(val) / 100.0
	}

	return md, nil
}
