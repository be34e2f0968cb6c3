package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/model"
)

// SheetFilename returns the file stem for sheet index out of count: the base
// itself for a single sheet, base-00, base-01 and so on otherwise.
func SheetFilename(base string, index, count int) string {
	if count == 1 {
		return base
	}
	return fmt.Sprintf("%s-%02d", base, index)
}

// SheetImage wraps the sheet's bytes in an image without copying. Stride 4 is
// read as non-premultiplied RGBA, stride 1 as grayscale.
func SheetImage(sheet model.SpriteSheet) (image.Image, error) {
	if sheet.Width <= 0 || sheet.Height <= 0 {
		return nil, perrors.New(perrors.ErrCodeEmptyResult, "sheet has no pixels (%dx%d)", sheet.Width, sheet.Height)
	}
	if len(sheet.Bytes) != sheet.Width*sheet.Height*sheet.Stride {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "sheet buffer holds %d bytes, %dx%d at stride %d needs %d",
			len(sheet.Bytes), sheet.Width, sheet.Height, sheet.Stride, sheet.Width*sheet.Height*sheet.Stride)
	}

	rect := image.Rect(0, 0, sheet.Width, sheet.Height)
	switch sheet.Stride {
	case 4:
		return &image.NRGBA{Pix: sheet.Bytes, Stride: sheet.Width * 4, Rect: rect}, nil
	case 1:
		return &image.Gray{Pix: sheet.Bytes, Stride: sheet.Width, Rect: rect}, nil
	}
	return nil, perrors.New(perrors.ErrCodeInvalidInput, "cannot render stride %d as an image (want 1 or 4)", sheet.Stride)
}

// EncodePNG writes the sheet as a PNG image.
func EncodePNG(w io.Writer, sheet model.SpriteSheet) error {
	img, err := SheetImage(sheet)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return perrors.Wrap(perrors.ErrCodeIO, err, "failed to encode png")
	}
	return nil
}

// WritePNG writes the sheet to path as a PNG image.
func WritePNG(path string, sheet model.SpriteSheet) error {
	f, err := os.Create(path)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeIO, err, "failed to create %s", path)
	}
	if err := EncodePNG(f, sheet); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return perrors.Wrap(perrors.ErrCodeIO, err, "failed to close %s", path)
	}
	return nil
}
