/*
Package pbm implements a decoder and encoder for the binary (P4) variant of the
Portable Bitmap format.

The file starts with the two byte signature "P4" followed by the width and the
height of the image as ASCII decimal numbers separated by whitespace. A '#'
outside of a number starts a comment which runs to the end of the line. Exactly
one whitespace byte follows the height and the pixel data starts immediately
after it.

Pixels are packed eight to a byte with the leftmost pixel in the most
significant bit. Every row starts on a byte boundary so when the width is not a
multiple of eight the unused low-order bits of the last byte in each row are
padding. A set bit is black, which is treated as foreground.
*/
package pbm

const (
	magic       = "P4"
	bitsPerByte = 8

	// MaxDimension is the largest width or height accepted by ReadHeader.
	MaxDimension = 1 << 16
)

// Pixel values produced by Bitmap.Unpack.
const (
	Background byte = 0x00
	Foreground byte = 0xff
)
