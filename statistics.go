package hview

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ChannelStats is one row of the per-channel summary table.
type ChannelStats struct {
	Name     string
	Mean     float64
	StdDev   float64
	Min      float64
	Max      float64
	Median   float64
	Variance float64
}

// StatisticsTable holds one ChannelStats per selected channel, in selection
// order.
type StatisticsTable []ChannelStats

// Summarize computes descriptive statistics for every channel of m, one row
// per entry of m.Names in the same order. StdDev and Variance are
// population moments. Statistics cover exactly the rows present in m: a
// sample limit applied before extraction is reflected here, never undone.
//
// A zero-row channel reports NaN for every statistic; population moments
// are undefined there and NaN keeps Summarize total.
func Summarize(m *ExtractedMatrix) StatisticsTable {
	table := make(StatisticsTable, 0, len(m.Names))
	for j, name := range m.Names {
		table = append(table, summarizeColumn(name, channelColumn(m, j)))
	}
	return table
}

func channelColumn(m *ExtractedMatrix, j int) []float64 {
	if m.Rows() == 0 {
		return nil
	}
	return mat.Col(nil, j, m.Channels)
}

func summarizeColumn(name string, x []float64) ChannelStats {
	if len(x) == 0 {
		nan := math.NaN()
		return ChannelStats{
			Name: name,
			Mean: nan, StdDev: nan, Min: nan, Max: nan, Median: nan, Variance: nan,
		}
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	return ChannelStats{
		Name:     name,
		Mean:     stat.Mean(x, nil),
		StdDev:   stat.PopStdDev(x, nil),
		Min:      floats.Min(x),
		Max:      floats.Max(x),
		Median:   median(sorted),
		Variance: stat.PopVariance(x, nil),
	}
}

// median of a sorted slice, averaging the middle pair for even lengths.
// stat.Quantile's cumulant kinds follow a different convention for even
// lengths than the midpoint fixed here.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return 0.5 * (sorted[n/2-1] + sorted[n/2])
}
