package pbmlabel

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/bodgit/pbmlabel/pbm"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Convert decodes an image in any registered format from r and writes it to
// w as a P4 image. The name of the input format is returned.
func Convert(w io.Writer, r io.Reader) (string, error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return "", err
	}
	return format, pbm.Encode(w, m)
}
