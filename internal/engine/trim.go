package engine

import (
	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/model"
)

// Trim crops every sprite to the smallest rectangle holding all pixels with a
// non-zero alpha byte.
func Trim(inputs []model.InputSprite, stride, alphaIndex int) ([]model.InputSprite, error) {
	trimmed, _, err := TrimWithOffsets(inputs, stride, alphaIndex)
	return trimmed, err
}

// TrimWithOffsets is Trim that also reports where each trimmed sprite sat in
// its source image.
func TrimWithOffsets(inputs []model.InputSprite, stride, alphaIndex int) ([]model.InputSprite, []model.TrimOffset, error) {
	if err := validatePixelLayout(stride, alphaIndex); err != nil {
		return nil, nil, err
	}
	out := make([]model.InputSprite, len(inputs))
	offsets := make([]model.TrimOffset, len(inputs))
	for i, in := range inputs {
		if err := validateInput(i, in, stride); err != nil {
			return nil, nil, err
		}
		out[i], offsets[i] = trimSprite(in, stride, alphaIndex)
	}
	return out, offsets, nil
}

// TrimSprite trims a single sprite. It returns an INVALID_INPUT error for a
// malformed buffer or pixel layout.
func TrimSprite(in model.InputSprite, stride, alphaIndex int) (model.InputSprite, error) {
	if err := validatePixelLayout(stride, alphaIndex); err != nil {
		return model.InputSprite{}, err
	}
	if err := validateInput(0, in, stride); err != nil {
		return model.InputSprite{}, err
	}
	out, _ := trimSprite(in, stride, alphaIndex)
	return out, nil
}

func validatePixelLayout(stride, alphaIndex int) error {
	if stride <= 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "stride must be positive, got %d", stride)
	}
	if alphaIndex < 0 || alphaIndex >= stride {
		return perrors.New(perrors.ErrCodeInvalidInput, "alpha channel %d outside pixel stride %d", alphaIndex, stride)
	}
	return nil
}

func validateInput(id int, in model.InputSprite, stride int) error {
	if in.Width < 0 || in.Height < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "sprite %d has negative size %dx%d", id, in.Width, in.Height)
	}
	if want := in.Width * in.Height * stride; len(in.Bytes) != want {
		return perrors.New(perrors.ErrCodeInvalidInput,
			"sprite %d: buffer holds %d bytes, %dx%d at stride %d needs %d",
			id, len(in.Bytes), in.Width, in.Height, stride, want)
	}
	return nil
}

// trimSprite expects a validated sprite.
func trimSprite(in model.InputSprite, stride, alphaIndex int) (model.InputSprite, model.TrimOffset) {
	w, h := in.Width, in.Height
	offset := model.TrimOffset{SourceWidth: w, SourceHeight: h}
	opaque := func(x, y int) bool {
		return in.Bytes[(y*w+x)*stride+alphaIndex] != 0
	}

	// First opaque row from the top sets the top bound and a first estimate
	// for left and right.
	top, left, right := -1, w, -1
	for y := 0; y < h && top < 0; y++ {
		for x := 0; x < w; x++ {
			if opaque(x, y) {
				if top < 0 {
					top = y
					left = x
				}
				right = x
			}
		}
	}
	if top < 0 {
		return model.InputSprite{Bytes: []byte{}}, offset
	}

	// Last opaque row from the bottom. It exists since row top is opaque.
	bottom := top
	for y := h - 1; y > top; y-- {
		found := false
		for x := 0; x < w; x++ {
			if opaque(x, y) {
				found = true
				left = min(left, x)
				right = max(right, x)
			}
		}
		if found {
			bottom = y
			break
		}
	}

	// Interior rows can only widen the bounds, so only the columns outside
	// them are scanned.
	for y := top + 1; y < bottom; y++ {
		for x := 0; x < left; x++ {
			if opaque(x, y) {
				left = x
				break
			}
		}
		for x := w - 1; x > right; x-- {
			if opaque(x, y) {
				right = x
				break
			}
		}
	}

	tw, th := right-left+1, bottom-top+1
	bytes := make([]byte, tw*th*stride)
	rowLen := tw * stride
	for y := 0; y < th; y++ {
		src := ((top+y)*w + left) * stride
		copy(bytes[y*rowLen:(y+1)*rowLen], in.Bytes[src:src+rowLen])
	}

	offset.Left, offset.Top = left, top
	return model.InputSprite{Bytes: bytes, Width: tw, Height: th}, offset
}
