package pnl

import (
	"math"
	"sort"
)

// Stats describes a set of pnl values.
type Stats struct {
	Count  int
	Total  float64
	Mean   float64
	Median float64
	Mode   float64
	Min    float64
	Max    float64
	StdDev float64

	Wins   int
	Losses int
	Flats  int
}

// Describe computes Stats for values. Median is the upper middle element
// for even counts, Mode breaks frequency ties toward the smallest value,
// and StdDev is the sample deviation (0 below two values).
func Describe(values []float64) Stats {
	s := Stats{Count: len(values)}
	if len(values) == 0 {
		return s
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Median = sorted[len(sorted)/2]

	counts := map[float64]int{}
	best := 0
	for _, v := range sorted {
		s.Total += v
		counts[v]++
		// sorted ascending, so strict > keeps the smallest on ties
		if counts[v] > best {
			best = counts[v]
			s.Mode = v
		}
		switch {
		case v > 0:
			s.Wins++
		case v < 0:
			s.Losses++
		default:
			s.Flats++
		}
	}
	s.Mean = s.Total / float64(s.Count)

	if s.Count > 1 {
		var ss float64
		for _, v := range values {
			d := v - s.Mean
			ss += d * d
		}
		s.StdDev = math.Sqrt(ss / float64(s.Count-1))
	}
	return s
}

// WinRate is the fraction of positive values.
func (s Stats) WinRate() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Count)
}

// LossRate is the fraction of negative values.
func (s Stats) LossRate() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Losses) / float64(s.Count)
}
