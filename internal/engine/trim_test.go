package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/model"
)

// rgbaSprite builds a w x h RGBA8 sprite. Listed pixels are opaque and carry
// their index+1 in the colour channels; every other pixel is transparent.
func rgbaSprite(w, h int, opaque ...[2]int) model.InputSprite {
	buf := make([]byte, w*h*4)
	for i, p := range opaque {
		off := (p[1]*w + p[0]) * 4
		v := byte(i + 1)
		copy(buf[off:off+4], []byte{v, v, v, 255})
	}
	return model.InputSprite{Bytes: buf, Width: w, Height: h}
}

func TestTrim_FullyTransparent(t *testing.T) {
	in := model.InputSprite{Bytes: make([]byte, 2*1*4), Width: 2, Height: 1}

	out, err := Trim([]model.InputSprite{in}, 4, 3)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Width)
	assert.Equal(t, 0, out[0].Height)
	assert.NotNil(t, out[0].Bytes)
	assert.Empty(t, out[0].Bytes)
}

func TestTrim_FullyOpaqueUnchanged(t *testing.T) {
	in := rgbaSprite(3, 2, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1})

	out, err := TrimSprite(in, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTrim_CropsToOpaqueBounds(t *testing.T) {
	in := rgbaSprite(4, 4, [2]int{2, 1}, [2]int{1, 2})

	out, offsets, err := TrimWithOffsets([]model.InputSprite{in}, 4, 3)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, 2, out[0].Width)
	assert.Equal(t, 2, out[0].Height)
	assert.Equal(t, []byte{
		0, 0, 0, 0, 1, 1, 1, 255,
		2, 2, 2, 255, 0, 0, 0, 0,
	}, out[0].Bytes)
	assert.Equal(t, model.TrimOffset{Left: 1, Top: 1, SourceWidth: 4, SourceHeight: 4}, offsets[0])
}

func TestTrim_InteriorRowsWidenBounds(t *testing.T) {
	// Top and bottom rows only have the centre pixel; the middle row reaches
	// both edges.
	in := rgbaSprite(5, 3, [2]int{2, 0}, [2]int{2, 2}, [2]int{0, 1}, [2]int{4, 1})

	out, err := TrimSprite(in, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Width)
	assert.Equal(t, 3, out.Height)
}

func TestTrim_BottomRowWidensBounds(t *testing.T) {
	in := rgbaSprite(6, 5, [2]int{3, 1}, [2]int{1, 3}, [2]int{4, 3})

	out, offsets, err := TrimWithOffsets([]model.InputSprite{in}, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, out[0].Width)
	assert.Equal(t, 3, out[0].Height)
	assert.Equal(t, 1, offsets[0].Left)
	assert.Equal(t, 1, offsets[0].Top)
}

func TestTrim_SingleOpaquePixel(t *testing.T) {
	in := rgbaSprite(3, 3, [2]int{2, 2})

	out, err := TrimSprite(in, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, model.InputSprite{Bytes: []byte{1, 1, 1, 255}, Width: 1, Height: 1}, out)
}

func TestTrim_Idempotent(t *testing.T) {
	in := rgbaSprite(7, 6, [2]int{1, 4}, [2]int{5, 2}, [2]int{3, 1})

	once, err := TrimSprite(in, 4, 3)
	require.NoError(t, err)
	twice, err := TrimSprite(once, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestTrim_DoesNotAliasInput(t *testing.T) {
	in := rgbaSprite(1, 1, [2]int{0, 0})

	out, err := TrimSprite(in, 4, 3)
	require.NoError(t, err)
	out.Bytes[0] = 99
	assert.Equal(t, byte(1), in.Bytes[0])
}

func TestTrim_SingleChannelStride(t *testing.T) {
	in := model.InputSprite{Bytes: []byte{0, 0, 0, 0, 9, 0}, Width: 3, Height: 2}

	out, err := TrimSprite(in, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, model.InputSprite{Bytes: []byte{9}, Width: 1, Height: 1}, out)
}

func TestTrim_InvalidInput(t *testing.T) {
	good := rgbaSprite(2, 2, [2]int{0, 0})

	tests := []struct {
		name   string
		inputs []model.InputSprite
		stride int
		alpha  int
	}{
		{"short buffer", []model.InputSprite{{Bytes: make([]byte, 7), Width: 2, Height: 1}}, 4, 3},
		{"negative size", []model.InputSprite{{Width: -1, Height: 2}}, 4, 3},
		{"alpha outside stride", []model.InputSprite{good}, 4, 4},
		{"zero stride", []model.InputSprite{good}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Trim(tt.inputs, tt.stride, tt.alpha)
			require.Error(t, err)
			assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput), "got %v", err)
		})
	}
}
