package storage

import (
	"log/slog"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of stored shapes.
type Summary struct {
	Distinct     int
	Observations int
	MeanCount    float64
	StdDevCount  float64
	MeanCells    float64
	MostFrequent string
	TopCount     int
}

// Summarize computes count and shape-size statistics over all entries.
func (s *Storage) Summarize() Summary {
	sum := Summary{Distinct: s.Size()}
	if sum.Distinct == 0 {
		return sum
	}

	counts := make([]float64, 0, len(s.keys))
	cells := make([]float64, 0, len(s.keys))
	for _, key := range s.keys {
		c := s.counts[key]
		counts = append(counts, float64(c))
		cells = append(cells, float64(liveCells(key)))
		sum.Observations += c
		if c > sum.TopCount {
			sum.TopCount = c
			sum.MostFrequent = key
		}
	}
	if len(counts) > 1 {
		sum.MeanCount, sum.StdDevCount = stat.MeanStdDev(counts, nil)
	} else {
		sum.MeanCount = counts[0]
	}
	sum.MeanCells = stat.Mean(cells, nil)
	return sum
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("distinct", s.Distinct),
		slog.Int("observations", s.Observations),
		slog.Float64("mean_count", s.MeanCount),
		slog.Float64("stddev_count", s.StdDevCount),
		slog.Float64("mean_cells", s.MeanCells),
		slog.Int("top_count", s.TopCount),
	)
}

// liveCells counts the nonzero values in a canonical grid string.
func liveCells(key string) int {
	n := 0
	for _, tok := range strings.Fields(key) {
		if tok != "0" {
			n++
		}
	}
	return n
}
