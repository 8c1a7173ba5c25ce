package label

import "image"

// Offsets of the eight neighbours of a cell, clockwise from north.
var neighbours = [8][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

// Label labels every Unlabeled cell in g in place and returns the number of
// components found. Each cell is written at most once so labelling an
// already labelled grid is a no-op returning 0.
func Label(g *Grid) int {
	var (
		next  = 1
		stack []int
	)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Cells[g.index(x, y)] != Unlabeled {
				continue
			}
			stack = fill(g, x, y, next, stack[:0])
			next++
		}
	}

	return next - 1
}

// fill floods the component containing (x, y) with label using an explicit
// stack of cell indices. Cells are labelled as they are pushed so each one is
// pushed at most once and the stack never outgrows the component. The stack
// is returned so its backing array can be reused.
func fill(g *Grid, x, y, label int, stack []int) []int {
	i := g.index(x, y)
	g.Cells[i] = label
	stack = append(stack, i)

	for len(stack) > 0 {
		i, stack = stack[len(stack)-1], stack[:len(stack)-1]
		cx, cy := g.coordinate(i)
		for _, d := range neighbours {
			nx, ny := cx+d[0], cy+d[1]
			if !g.InBounds(nx, ny) {
				continue
			}
			// Background, or already carries a label
			j := g.index(nx, ny)
			if g.Cells[j] != Unlabeled {
				continue
			}
			g.Cells[j] = label
			stack = append(stack, j)
		}
	}

	return stack
}

// Component describes one labelled region.
type Component struct {
	Label int
	// Pixels is the number of cells carrying Label.
	Pixels int
	// Bounds is the smallest rectangle containing every cell of the
	// component.
	Bounds image.Rectangle
}

// Components returns a summary of each label present in a labelled grid,
// ordered by label. Labels that don't appear get a zero Pixels count.
func Components(g *Grid) []Component {
	var cs []Component
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := g.Cells[g.index(x, y)]
			if v < 1 {
				continue
			}
			for len(cs) < v {
				cs = append(cs, Component{Label: len(cs) + 1})
			}
			c := &cs[v-1]
			r := image.Rect(x, y, x+1, y+1)
			if c.Pixels == 0 {
				c.Bounds = r
			} else {
				c.Bounds = c.Bounds.Union(r)
			}
			c.Pixels++
		}
	}
	return cs
}
