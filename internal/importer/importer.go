// Package importer loads sprite images from disk and decodes them into raw
// RGBA8 buffers for the packing engine. It also reads sprite lists (CSV or
// Excel) naming the files to pack.
package importer

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/piwi3910/SheetPack/internal/model"
)

// ImportResult holds the results of an import operation. Sprites, Names and
// Sources are parallel: index i is the sprite id used by the engine.
type ImportResult struct {
	Sprites  []model.InputSprite
	Names    []string
	Sources  []string
	Errors   []string
	Warnings []string
}

// imageExtensions lists the file extensions picked up from directories.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImagePath reports whether path has a supported image extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ExpandInputs resolves command-line inputs into image paths. Directories
// contribute their image files (non-recursive, sorted by name); arguments
// containing glob metacharacters are expanded. Plain files are kept as given
// so that unreadable paths surface as import errors later.
func ExpandInputs(inputs []string) ([]string, []string) {
	var paths, warnings []string
	for _, in := range inputs {
		if strings.ContainsAny(in, "*?[") {
			matches, err := filepath.Glob(in)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("Invalid pattern '%s': %v", in, err))
				continue
			}
			if len(matches) == 0 {
				warnings = append(warnings, fmt.Sprintf("Pattern '%s' matched no files", in))
			}
			sort.Strings(matches)
			paths = append(paths, matches...)
			continue
		}

		info, err := os.Stat(in)
		if err != nil || !info.IsDir() {
			paths = append(paths, in)
			continue
		}

		entries, err := os.ReadDir(in)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Cannot read directory '%s': %v", in, err))
			continue
		}
		found := 0
		for _, e := range entries {
			if e.IsDir() || !IsImagePath(e.Name()) {
				continue
			}
			paths = append(paths, filepath.Join(in, e.Name()))
			found++
		}
		if found == 0 {
			warnings = append(warnings, fmt.Sprintf("Directory '%s' contains no images", in))
		}
	}
	return paths, warnings
}

// SpriteName returns the file stem used as a sprite's name.
func SpriteName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ImportImages decodes every path into an RGBA8 sprite. A scale other than 1
// resamples each sprite with nearest-neighbour filtering. Files that cannot
// be decoded are reported in Errors and skipped.
func ImportImages(paths []string, scale float64) ImportResult {
	result := ImportResult{}
	if scale <= 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Scale must be positive, got %g", scale))
		return result
	}

	for _, path := range paths {
		sprite, err := ImportImage(path, scale)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		if sprite.Width == 0 || sprite.Height == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: image is empty", path))
		}
		result.Sprites = append(result.Sprites, sprite)
		result.Names = append(result.Names, SpriteName(path))
		result.Sources = append(result.Sources, path)
	}
	return result
}

// ImportImage decodes a single image file.
func ImportImage(path string, scale float64) (model.InputSprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.InputSprite{}, fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	return DecodeSprite(f, scale)
}

// DecodeSprite decodes any registered image format from r.
func DecodeSprite(r io.Reader, scale float64) (model.InputSprite, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return model.InputSprite{}, fmt.Errorf("cannot decode image: %w", err)
	}
	if scale != 1 {
		img = Scale(img, scale)
	}
	return SpriteFromImage(img), nil
}

// Scale resizes img by factor with nearest-neighbour sampling. Dimensions are
// rounded and never drop below one pixel.
func Scale(img image.Image, factor float64) image.Image {
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor+0.5))
	h := max(1, int(float64(b.Dy())*factor+0.5))
	return resize.Resize(uint(w), uint(h), img, resize.NearestNeighbor)
}

// SpriteFromImage converts img to a tightly packed non-premultiplied RGBA8
// sprite.
func SpriteFromImage(img image.Image) model.InputSprite {
	nrgba := ToNRGBA(img)
	b := nrgba.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		copy(buf[y*w*4:(y+1)*w*4], row)
	}
	return model.InputSprite{Bytes: buf, Width: w, Height: h}
}

// ToNRGBA returns img as an *image.NRGBA anchored at the origin.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
