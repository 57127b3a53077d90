// Package tiles cuts an image into a grid of equally sized square tiles and
// writes each tile as its own PNG file.
package tiles

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/sokinpui/splitkit/internal/fs"
	"github.com/sokinpui/splitkit/internal/model"
)

// DefaultSize is the edge length of a tile in pixels.
const DefaultSize = 32

// ErrInvalidDimensions is returned when the image cannot be cut into whole
// tiles.
var ErrInvalidDimensions = errors.New("image dimensions must be multiples of the tile size")

// Options configures Split.
type Options struct {
	// Size is the tile edge length in pixels. Zero means DefaultSize.
	Size int
	// Progress, if set, is called after every written tile.
	Progress func(done, total int)
}

// Validate checks the option values.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Size, validation.Min(0)),
	)
}

// Name returns the file name of the tile at grid position (col, row).
func Name(col, row int) string {
	return fmt.Sprintf("tile_%d_%d.png", col, row)
}

// Split decodes the image at input and writes one PNG per tile into
// outputDir, scanning rows top to bottom and columns left to right. The
// dimensions are checked before outputDir is touched, so an image that does
// not divide evenly leaves no trace on disk.
func Split(input, outputDir string, opts Options) ([]model.Tile, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	size := opts.Size
	if size == 0 {
		size = DefaultSize
	}

	img, err := Load(input)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width%size != 0 || height%size != 0 {
		return nil, fmt.Errorf("%w: %dx%d is not divisible by %d", ErrInvalidDimensions, width, height, size)
	}

	if err := fs.EnsureDir(outputDir); err != nil {
		return nil, err
	}

	total := (width / size) * (height / size)
	written := make([]model.Tile, 0, total)
	for y := 0; y < height; y += size {
		for x := 0; x < width; x += size {
			col, row := x/size, y/size
			rect := image.Rect(x, y, x+size, y+size).Add(bounds.Min)

			path := filepath.Join(outputDir, Name(col, row))
			if err := save(Crop(img, rect), path); err != nil {
				return written, err
			}

			written = append(written, model.Tile{Col: col, Row: row, Path: path})
			if opts.Progress != nil {
				opts.Progress(len(written), total)
			}
		}
	}
	return written, nil
}

// Load opens and decodes an image file in any registered format.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// Crop copies rect out of img into a new image anchored at (0, 0). The
// standard in-memory pixel models are preserved; anything else becomes NRGBA.
func Crop(img image.Image, rect image.Rectangle) image.Image {
	dstRect := image.Rect(0, 0, rect.Dx(), rect.Dy())

	var dst draw.Image
	switch src := img.(type) {
	case *image.Paletted:
		palette := make([]color.Color, len(src.Palette))
		copy(palette, src.Palette)
		dst = image.NewPaletted(dstRect, palette)
	case *image.Gray:
		dst = image.NewGray(dstRect)
	case *image.Gray16:
		dst = image.NewGray16(dstRect)
	case *image.RGBA:
		dst = image.NewRGBA(dstRect)
	case *image.RGBA64:
		dst = image.NewRGBA64(dstRect)
	case *image.NRGBA64:
		dst = image.NewNRGBA64(dstRect)
	default:
		dst = image.NewNRGBA(dstRect)
	}

	draw.Draw(dst, dstRect, img, rect.Min, draw.Src)
	return dst
}

func save(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}
