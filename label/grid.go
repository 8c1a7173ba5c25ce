/*
Package label assigns a distinct label to each connected group of foreground
pixels in a binary image.

Pixels are connected when they touch along an edge or at a corner, so every
pixel has up to eight neighbours. Labelling is a single pass: cells are
scanned row by row and every foreground cell not yet labelled seeds a depth
first flood fill with the next label. Labels therefore run from 1 to N in the
order their components are first met by the scan.

Coordinates are (x, y) throughout with x the column, bounded by Width, and y
the row, bounded by Height.
*/
package label

import (
	"errors"

	"github.com/bodgit/pbmlabel/pbm"
)

// Cell values that aren't labels.
const (
	Background = 0
	// Unlabeled marks a foreground cell that hasn't been reached by a flood
	// fill yet. It is negative so it can't be mistaken for any label.
	Unlabeled = -1
)

var errSize = errors.New("label: pixel data does not match dimensions")

// Grid is a Width by Height raster of cells stored row by row.
type Grid struct {
	Width, Height int
	// Stride is the distance in Cells between vertically adjacent cells.
	Stride int
	Cells  []int
}

// NewGrid returns a Grid with every cell set to Background.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Stride: width,
		Cells:  make([]int, width*height),
	}
}

// FromPixels builds a Grid from one byte per pixel, row by row. Foreground
// bytes become Unlabeled and everything else Background.
func FromPixels(width, height int, pix []byte) (*Grid, error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return nil, errSize
	}
	g := NewGrid(width, height)
	g.mark(pix)
	return g, nil
}

// FromBitmap unpacks b into a new Grid ready for labelling.
func FromBitmap(b *pbm.Bitmap) *Grid {
	g := NewGrid(b.Width, b.Height)
	// Unpack always returns Width*Height pixels
	g.mark(b.Unpack())
	return g
}

// mark sets every foreground pixel in pix, one byte per cell, to Unlabeled.
func (g *Grid) mark(pix []byte) {
	for i, p := range pix {
		if p == pbm.Foreground {
			g.Cells[i] = Unlabeled
		}
	}
}

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

func (g *Grid) index(x, y int) int {
	return y*g.Stride + x
}

func (g *Grid) coordinate(i int) (x, y int) {
	return i % g.Stride, i / g.Stride
}

// At returns the cell at (x, y), or Background if it lies outside the grid.
func (g *Grid) At(x, y int) int {
	if !g.InBounds(x, y) {
		return Background
	}
	return g.Cells[g.index(x, y)]
}

// Set sets the cell at (x, y). Cells outside the grid are ignored.
func (g *Grid) Set(x, y, v int) {
	if !g.InBounds(x, y) {
		return
	}
	g.Cells[g.index(x, y)] = v
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	dup := *g
	dup.Cells = append([]int(nil), g.Cells...)
	return &dup
}
