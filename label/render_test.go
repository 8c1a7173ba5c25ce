package label

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	g := gridFrom(t,
		"#..#",
		"#...",
	)
	require.Equal(t, 2, Label(g))

	buf := new(bytes.Buffer)
	require.NoError(t, Render(buf, g))
	assert.Equal(t, " 1     2\n 1      \n", buf.String())
}

func TestRenderPlaceholder(t *testing.T) {
	g := gridFrom(t,
		".#",
		"..",
	)
	Label(g)

	buf := new(bytes.Buffer)
	require.NoError(t, Render(buf, g, WithPlaceholder(".")))
	assert.Equal(t, " . 1\n . .\n", buf.String())
}

func TestRenderWideLabels(t *testing.T) {
	g := NewGrid(23, 1)
	for x := 0; x < g.Width; x += 2 {
		g.Set(x, 0, Unlabeled)
	}
	require.Equal(t, 12, Label(g))

	buf := new(bytes.Buffer)
	require.NoError(t, Render(buf, g, WithPlaceholder("")))
	assert.Equal(t, " 1   2   3   4   5   6   7   8   9  10  11  12\n", buf.String())
}

func TestRenderEmpty(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, Render(buf, NewGrid(0, 0)))
	assert.Empty(t, buf.String())
}
