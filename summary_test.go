package pbmlabel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, summarize(0, nil))
	assert.Equal(t, Summary{Images: 1, Components: 1, MeanArea: 9}, summarize(1, []float64{9}))

	s := summarize(2, []float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 2, s.Images)
	assert.Equal(t, 8, s.Components)
	assert.InDelta(t, 5, s.MeanArea, 1e-9)
	// Sample standard deviation
	assert.InDelta(t, 2.138089935299395, s.StdDevArea, 1e-9)
}

func TestSummaryString(t *testing.T) {
	s := Summary{Images: 3, Components: 4, MeanArea: 4.5, StdDevArea: 4.041451884327381}
	assert.Equal(t, "3 images, 4 components, mean area 4.50 (stddev 4.04)", s.String())
}
