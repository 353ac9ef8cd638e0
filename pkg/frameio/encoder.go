package frameio

import(
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"

	"github.com/abworrall/stackhdr/pkg/pipeline"
)

// A FileEncoder writes each Output it is given into Dir, as
// <name>.tif or <name>.png depending on Format.
type FileEncoder struct {
	Dir     string
	Format  string // "tif" or "png"
	Written []string
}

func NewFileEncoder(dir, format string) (*FileEncoder, error) {
	switch format {
	case "tif", "png":
	default:
		return nil, fmt.Errorf("FileEncoder: no format named '%s'", format)
	}
	return &FileEncoder{Dir: dir, Format: format}, nil
}

func (e *FileEncoder)Encode(out pipeline.Output) error {
	filename := filepath.Join(e.Dir, out.Name + "." + e.Format)
	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %w", filename, err)
	}
	defer writer.Close()

	img := OutputToImage(out)
	switch e.Format {
	case "tif":
		err = tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate})
	case "png":
		err = png.Encode(writer, img)
	}
	if err != nil {
		return fmt.Errorf("encode '%s': %w", filename, err)
	}

	e.Written = append(e.Written, filename)
	log.Printf("Wrote %s (%dx%d, %s)\n", filename, out.Width, out.Height, out.Metadata)
	return nil
}
