package pbmlabel

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/bodgit/pbmlabel/pbm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 5, 2))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	m.SetGray(0, 0, color.Gray{})
	m.SetGray(4, 1, color.Gray{})

	in := new(bytes.Buffer)
	require.NoError(t, png.Encode(in, m))

	out := new(bytes.Buffer)
	format, err := Convert(out, in)
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	r, err := Label(out)
	require.NoError(t, err)
	assert.Equal(t, pbm.Config{Width: 5, Height: 2}, r.Config)
	assert.Equal(t, 2, r.Count)
	assert.Equal(t, []int{1, 0, 0, 0, 0, 0, 0, 0, 0, 2}, r.Grid.Cells)
}

func TestConvertPBM(t *testing.T) {
	out := new(bytes.Buffer)
	format, err := Convert(out, bytes.NewReader([]byte(ring)))
	require.NoError(t, err)
	assert.Equal(t, "pbm", format)
	assert.Equal(t, "P4\n3 3\n\xe0\xa0\xe0", out.String())
}

func TestConvertUnknown(t *testing.T) {
	_, err := Convert(new(bytes.Buffer), bytes.NewReader([]byte("not an image")))
	assert.Equal(t, image.ErrFormat, err)
}
