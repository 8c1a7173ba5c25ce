package label

import (
	"bufio"
	"fmt"
	"io"
)

const cellWidth = 2

type renderOptions struct {
	placeholder string
}

// RenderOption configures Render.
type RenderOption func(*renderOptions)

// WithPlaceholder sets the string printed for background cells. It is right
// justified in the cell like a label.
func WithPlaceholder(s string) RenderOption {
	return func(o *renderOptions) {
		o.placeholder = s
	}
}

// Render writes g to w as text, one row per line. Every cell takes two
// characters: its label right justified, or the placeholder for background.
func Render(w io.Writer, g *Grid, opts ...RenderOption) error {
	o := renderOptions{placeholder: " "}
	for _, opt := range opts {
		opt(&o)
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if v := g.At(x, y); v != Background {
				fmt.Fprintf(bw, "%*d", cellWidth, v)
			} else {
				fmt.Fprintf(bw, "%*s", cellWidth, o.placeholder)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
