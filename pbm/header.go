package pbm

import (
	"io"
	"strconv"
)

// FormatError reports that the input is not a valid P4 image.
type FormatError string

func (e FormatError) Error() string { return "pbm: invalid format: " + string(e) }

// Config holds the dimensions of an image as read from its header.
type Config struct {
	Width, Height int
}

// Stride returns the number of bytes used to store a row of pixels.
func (c Config) Stride() int {
	return (c.Width + bitsPerByte - 1) / bitsPerByte
}

// Size returns the number of bytes of pixel data following the header.
func (c Config) Size() int {
	return c.Stride() * c.Height
}

type state int

const (
	seekToken state = iota
	accumulateDigits
	skipComment
)

// Enough for MaxDimension with room to spare; anything longer is rejected
// before conversion rather than overflowing.
const maxDigits = 9

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

type headerScanner struct {
	state  state
	digits []byte
	dims   [2]int
	n      int
}

// token converts the accumulated digits into the next dimension.
func (s *headerScanner) token() error {
	if len(s.digits) > maxDigits {
		return FormatError("dimension too large")
	}
	v, err := strconv.Atoi(string(s.digits))
	if err != nil {
		return FormatError("malformed dimension")
	}
	if v < 1 || v > MaxDimension {
		return FormatError("dimension out of range")
	}
	s.dims[s.n] = v
	s.n++
	s.digits = s.digits[:0]
	return nil
}

func (s *headerScanner) step(b byte) error {
	switch s.state {
	case skipComment:
		if b == '\n' || b == '\r' {
			s.state = seekToken
		}
	case seekToken:
		switch {
		case b == '#':
			s.state = skipComment
		case isDigit(b):
			s.digits = append(s.digits, b)
			s.state = accumulateDigits
		case !isSpace(b):
			return FormatError("malformed dimension")
		}
	case accumulateDigits:
		switch {
		case isDigit(b):
			s.digits = append(s.digits, b)
		case isSpace(b):
			s.state = seekToken
			return s.token()
		case b == '#':
			s.state = skipComment
			return s.token()
		default:
			return FormatError("malformed dimension")
		}
	}
	return nil
}

// ReadHeader reads the signature, width and height of a P4 image from r. On
// success r is positioned on the first byte of pixel data.
func ReadHeader(r io.ByteScanner) (Config, error) {
	for i := 0; i < len(magic); i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return Config{}, FormatError("missing signature")
			}
			return Config{}, err
		}
		if b != magic[i] {
			return Config{}, FormatError("not a P4 image")
		}
	}

	var s headerScanner
	for s.n < len(s.dims) {
		b, err := r.ReadByte()
		if err != nil {
			if err != io.EOF {
				return Config{}, err
			}
			// A number running into the end of the stream is still a number,
			// there just isn't any pixel data after it
			if s.state == accumulateDigits {
				if err := s.token(); err != nil {
					return Config{}, err
				}
				if s.n == len(s.dims) {
					break
				}
			}
			return Config{}, FormatError("missing dimensions")
		}
		if err := s.step(b); err != nil {
			return Config{}, err
		}
	}

	// A comment straight after the height swallows the rest of its line
	for s.state == skipComment {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return Config{}, err
		}
		if err := s.step(b); err != nil {
			return Config{}, err
		}
		// CRLF ends the line too, don't leave the LF for the pixel data
		if s.state == seekToken && b == '\r' {
			next, err := r.ReadByte()
			switch {
			case err == io.EOF:
			case err != nil:
				return Config{}, err
			case next != '\n':
				if err := r.UnreadByte(); err != nil {
					return Config{}, err
				}
			}
		}
	}

	return Config{Width: s.dims[0], Height: s.dims[1]}, nil
}
