package cli

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/nfnt/resize"

	"github.com/piwi3910/SheetPack/internal/export"
	"github.com/piwi3910/SheetPack/internal/model"
)

// previewMaxSize bounds the longer side of a preview image in pixels.
const previewMaxSize = 512

var errNoGraphicsTerminal = errors.New("terminal supports neither Kitty, iTerm2 nor Sixel graphics")

// previewSheet draws the sheet inline using the terminal's graphics protocol.
func previewSheet(w io.Writer, sheet model.SpriteSheet) error {
	if sheet.TotalArea() == 0 {
		return nil
	}
	img, err := export.SheetImage(sheet)
	if err != nil {
		return err
	}
	img = previewImage(img)

	switch {
	case rasterm.IsTermKitty():
		err = rasterm.Settings{}.KittyWriteImage(w, img)
	case rasterm.IsTermItermWez():
		err = rasterm.Settings{}.ItermWriteImage(w, img)
	default:
		capable, sixelErr := rasterm.IsSixelCapable()
		if sixelErr != nil || !capable {
			return errNoGraphicsTerminal
		}
		err = rasterm.Settings{}.SixelWriteImage(w, quantize(img))
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

// previewImage shrinks large sheets to fit previewMaxSize. Pixel art stays
// crisp with nearest-neighbour sampling.
func previewImage(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= previewMaxSize && b.Dy() <= previewMaxSize {
		return img
	}
	return resize.Thumbnail(previewMaxSize, previewMaxSize, img, resize.NearestNeighbor)
}

// quantize reduces img to a 64 color palette for Sixel output.
func quantize(img image.Image) *image.Paletted {
	paletted := image.NewPaletted(img.Bounds(), nil)
	quantizer := gogif.MedianCutQuantizer{NumColor: 64}
	quantizer.Quantize(paletted, img.Bounds(), img, img.Bounds().Min)
	return paletted
}
