package pbmlabel

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the components found across a set of images.
type Summary struct {
	Images     int
	Components int
	// MeanArea and StdDevArea are in pixels.
	MeanArea   float64
	StdDevArea float64
}

func summarize(images int, areas []float64) Summary {
	s := Summary{
		Images:     images,
		Components: len(areas),
	}
	switch len(areas) {
	case 0:
	case 1:
		s.MeanArea = areas[0]
	default:
		s.MeanArea, s.StdDevArea = stat.MeanStdDev(areas, nil)
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d images, %d components, mean area %.2f (stddev %.2f)", s.Images, s.Components, s.MeanArea, s.StdDevArea)
}
