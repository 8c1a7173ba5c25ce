package pbm

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

var errTooLarge = errors.New("pbm: image is too large")

// Anything below half intensity is foreground
const threshold = 0x8000

func luminance(c color.Color) uint16 {
	return color.Gray16Model.Convert(c).(color.Gray16).Y
}

func dark(c color.Color) bool {
	// Mostly transparent pixels show the (white) background
	if _, _, _, a := c.RGBA(); a < threshold {
		return false
	}
	return luminance(c) < threshold
}

// Work out which palette entries become foreground. With exactly two
// distinct colors the darker one is foreground regardless of how dark it
// actually is, otherwise each color is thresholded on its own.
func foreground(p color.Palette) []bool {
	fg := make([]bool, len(p))
	if len(p) == 2 && dark(p[0]) == dark(p[1]) {
		_, _, _, a0 := p[0].RGBA()
		_, _, _, a1 := p[1].RGBA()
		if l0, l1 := luminance(p[0]), luminance(p[1]); l0 != l1 && a0 >= threshold && a1 >= threshold {
			fg[0], fg[1] = l0 < l1, l1 < l0
			return fg
		}
	}
	for i, c := range p {
		fg[i] = dark(c)
	}
	return fg
}

func binarize(m image.Image) *Bitmap {
	b := m.Bounds()
	bm := NewBitmap(Config{Width: b.Dx(), Height: b.Dy()})

	switch src := m.(type) {
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				bm.Set(x-b.Min.X, y-b.Min.Y, uint16(src.GrayAt(x, y).Y)<<8 < threshold)
			}
		}
		return bm
	case *image.Gray16:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				bm.Set(x-b.Min.X, y-b.Min.Y, src.Gray16At(x, y).Y < threshold)
			}
		}
		return bm
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > 2 {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, 2), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	fg := foreground(pm.Palette)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if i := int(pm.ColorIndexAt(x, y)); i < len(fg) {
				bm.Set(x-b.Min.X, y-b.Min.Y, fg[i])
			}
		}
	}
	return bm
}

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(b *Bitmap) error {
	if _, err := fmt.Fprintf(e.w, "%s\n%d %d\n", magic, b.Width, b.Height); err != nil {
		return err
	}
	_, err := e.w.Write(b.Pix)
	return err
}

// WriteBitmap writes b to w in P4 format.
func WriteBitmap(w io.Writer, b *Bitmap) error {
	e := encoder{w: w}
	return e.encode(b)
}

// Encode writes the Image m to w in P4 format. Images that aren't already
// grayscale or two color are first reduced to two colors, the darker of
// which becomes foreground.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Empty() {
		return errors.New("pbm: image is empty")
	}
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		return errTooLarge
	}

	return WriteBitmap(w, binarize(m))
}
