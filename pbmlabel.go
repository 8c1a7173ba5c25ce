/*
Package pbmlabel is a library for labelling the connected components of
binary PBM images and keeping a record of the results.
*/
package pbmlabel

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bodgit/pbmlabel/label"
	"github.com/bodgit/pbmlabel/pbm"
)

// Result is a labelled image.
type Result struct {
	// Path is the file the image was read from, if any.
	Path string
	// SHA1 is the hex encoded digest of the image file contents.
	SHA1       string
	Config     pbm.Config
	Count      int
	Grid       *label.Grid
	Components []label.Component
}

// Labeler reads and labels images, optionally recording the results.
type Labeler struct {
	db     *ResultDB
	logger *log.Logger
}

// New returns a Labeler. db may be nil if nothing is going to be recorded.
func New(db *ResultDB, logger *log.Logger) *Labeler {
	return &Labeler{
		db:     db,
		logger: logger,
	}
}

// Close closes the underlying database, if any.
func (l *Labeler) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Label reads a P4 image from r and labels it. The header and pixel data are
// fully read before any labelling starts.
func Label(r io.Reader) (*Result, error) {
	b, err := pbm.Read(r)
	if err != nil {
		return nil, err
	}

	g := label.FromBitmap(b)
	n := label.Label(g)

	return &Result{
		Config:     b.Config,
		Count:      n,
		Grid:       g,
		Components: label.Components(g),
	}, nil
}

// Open reads and labels the image in file.
func (l *Labeler) Open(file string) (*Result, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	r, err := Label(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	r.Path = file
	r.SHA1 = fmt.Sprintf("%X", sha1.Sum(b))

	l.logger.Printf("Labelled \"%s\", %d X %d with %d components\n", file, r.Config.Width, r.Config.Height, r.Count)

	return r, nil
}
