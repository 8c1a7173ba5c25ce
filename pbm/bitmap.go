package pbm

import (
	"image"
	"image/color"
)

// Palette maps bit values to colors; index 0 is white background and index 1
// is black foreground.
var Palette = color.Palette{color.White, color.Black}

// Bitmap is a packed one bit per pixel image, laid out exactly as the pixel
// data of a P4 file.
type Bitmap struct {
	Config
	// Pix holds Height rows of Stride bytes each.
	Pix []byte
}

// NewBitmap returns an empty Bitmap with the given dimensions.
func NewBitmap(c Config) *Bitmap {
	return &Bitmap{
		Config: c,
		Pix:    make([]byte, c.Size()),
	}
}

func (b *Bitmap) offset(x, y int) (int, uint) {
	return y*b.Stride() + x/bitsPerByte, uint(bitsPerByte - 1 - x%bitsPerByte)
}

// Bit returns 1 if the pixel at (x, y) is foreground and 0 otherwise. Pixels
// outside the image are background.
func (b *Bitmap) Bit(x, y int) byte {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	i, shift := b.offset(x, y)
	return b.Pix[i] >> shift & 1
}

// Set sets or clears the pixel at (x, y).
func (b *Bitmap) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i, shift := b.offset(x, y)
	if on {
		b.Pix[i] |= 1 << shift
	} else {
		b.Pix[i] &^= 1 << shift
	}
}

// Unpack expands the bitmap to one byte per pixel, row by row, using
// Foreground and Background. Row padding bits are never read.
func (b *Bitmap) Unpack() []byte {
	out := make([]byte, b.Width*b.Height)
	stride := b.Stride()
	for y := 0; y < b.Height; y++ {
		row := b.Pix[y*stride : (y+1)*stride]
		for x := 0; x < b.Width; x++ {
			if row[x/bitsPerByte]&(0x80>>uint(x%bitsPerByte)) != 0 {
				out[y*b.Width+x] = Foreground
			}
		}
	}
	return out
}

// Image returns the bitmap as a two color paletted image using Palette.
func (b *Bitmap) Image() *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, b.Width, b.Height), Palette)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			m.SetColorIndex(x, y, b.Bit(x, y))
		}
	}
	return m
}
