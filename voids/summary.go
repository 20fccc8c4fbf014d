package voids

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a finished run. It reports on the records, it never
// filters them.
type Summary struct {
	Points, Duplicates, Cells int
	MinRadius, MaxRadius      float64
	MeanRadius, StdRadius     float64
	Volume                    float64 // Sum of the cell volumes
	radii, volumes            []float64
}

func newSummary(points, duplicates int) *Summary {
	return &Summary{Points: points, Duplicates: duplicates}
}

func (s *Summary) add(v Void, volume float64) {
	s.radii = append(s.radii, v.Radius)
	s.volumes = append(s.volumes, volume)
}

func (s *Summary) finish() {
	s.Cells = len(s.radii)
	if s.Cells == 0 {
		return
	}
	s.MinRadius, s.MaxRadius = floats.Min(s.radii), floats.Max(s.radii)
	s.MeanRadius = stat.Mean(s.radii, nil)
	if s.Cells > 1 {
		s.StdRadius = stat.StdDev(s.radii, nil)
	}
	s.Volume = floats.Sum(s.volumes)
	s.radii, s.volumes = nil, nil
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d points (%d duplicates), %d cells, radius min/max = %g/%g, mean = %g, std = %g, volume = %g",
		s.Points, s.Duplicates, s.Cells, s.MinRadius, s.MaxRadius, s.MeanRadius, s.StdRadius, s.Volume)
}
