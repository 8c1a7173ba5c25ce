package pbm

import (
	"bufio"
	"errors"
	"image"
	"io"
)

// ErrShortData is returned when the pixel data ends before Height rows have
// been read.
var ErrShortData = errors.New("pbm: not enough image data")

// reader is what the header and pixel data are read through. If the
// io.Reader passed in doesn't also implement io.ByteScanner it is buffered.
type reader interface {
	io.Reader
	io.ByteScanner
}

func asReader(r io.Reader) reader {
	if rr, ok := r.(reader); ok {
		return rr
	}
	return bufio.NewReader(r)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// ReadBitmap reads the packed pixel data for an image with the given
// dimensions from r, which should be positioned just past the header.
func ReadBitmap(r io.Reader, c Config) (*Bitmap, error) {
	b := NewBitmap(c)
	if err := readFull(r, b.Pix); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, ErrShortData
	}
	return b, nil
}

type decoder struct {
	r reader

	config Config
	bitmap *Bitmap
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = asReader(r)

	var err error
	if d.config, err = ReadHeader(d.r); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	d.bitmap, err = ReadBitmap(d.r, d.config)
	return err
}

// Read reads a complete P4 image from r and returns the packed bitmap.
func Read(r io.Reader) (*Bitmap, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.bitmap, nil
}

// Decode reads a P4 image from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	b, err := Read(r)
	if err != nil {
		return nil, err
	}
	return b.Image(), nil
}

// DecodeConfig returns the color model and dimensions of a P4 image without
// decoding the pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: Palette,
		Width:      d.config.Width,
		Height:     d.config.Height,
	}, nil
}

func init() {
	image.RegisterFormat("pbm", magic, Decode, DecodeConfig)
}
