package hview

// Channel naming and channel extraction. A "channel" is one data column of a
// dataset, excluding any time column.

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// channelNamesAttr is the attribute consulted for explicit channel names.
const channelNamesAttr = "channel_names"

// Positional naming templates, indexed from 1, used when a dataset carries
// no usable channel_names attribute. The temporal view keeps the localized
// form of the original analysis tool.
const (
	BrowseNameTemplate   = "Channel_%d"
	TemporalNameTemplate = "Canal %d"
)

// Default selection sizes applied when the user's channel selection is
// empty. The browse view defaults to a single channel; the temporal view to
// up to three. These are deliberate, distinct UX fallbacks.
const (
	defaultBrowseChannels   = 1
	defaultTemporalChannels = 3
)

// DeriveNames returns one display name per channel, length count.
//
// When attrs carries a channel_names sequence whose length equals count,
// those names are returned verbatim in original order. In every other case
// (attribute absent, scalar-typed, or the wrong length) the positional
// template supplies "template(1) .. template(count)". DeriveNames is
// deterministic and total: it never fails.
func DeriveNames(attrs AttrMap, count int, template string) []string {
	if count <= 0 {
		return nil
	}
	if v, ok := attrs[channelNamesAttr]; ok && v.IsSeq && len(v.Sequence) == count {
		names := make([]string, count)
		copy(names, v.Sequence)
		return names
	}
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf(template, i+1)
	}
	return names
}

// ExtractedMatrix is a user's channel selection sliced out of one
// materialized dataset, ready for charting, statistics, and export.
// Channels has one column per entry of Names, in the same order; it is nil
// when the source has no rows. Time is nil for non-temporal data and
// otherwise has one entry per Channels row.
type ExtractedMatrix struct {
	Time     []float64
	Channels *mat.Dense
	Names    []string
}

// Rows returns the number of samples in the matrix.
func (m *ExtractedMatrix) Rows() int {
	if m.Channels == nil {
		return 0
	}
	r, _ := m.Channels.Dims()
	return r
}

// Extract slices the channels named in requested out of raw.
//
// For temporal data, column 0 of raw is split off as the time axis and
// allNames describes only the remaining columns. An empty requested list is
// not an error: it is replaced by the documented default selection. Columns
// come back in requested order, never sorted. A requested name missing from
// allNames yields a *SelectionError. Rank-1 arrays are a single implicit
// channel and skip column indexing entirely.
func Extract(raw *Array, allNames, requested []string, temporal bool) (*ExtractedMatrix, error) {
	if raw == nil {
		return nil, fmt.Errorf("cannot extract channels from a nil array")
	}
	if raw.Rank() > 2 {
		return nil, fmt.Errorf("cannot extract channels from a rank-%d array", raw.Rank())
	}

	if raw.Rank() <= 1 {
		return extract1D(raw, allNames)
	}

	if len(requested) == 0 {
		requested = defaultSelection(allNames, temporal)
	}

	rows, cols := raw.Rows(), raw.Cols()
	var timeAxis []float64
	first := 0 // raw column where channel data starts
	if temporal {
		timeAxis = make([]float64, rows)
		for i := range timeAxis {
			timeAxis[i] = raw.Data[i*cols]
		}
		first = 1
	}

	indices := make([]int, len(requested))
	for j, name := range requested {
		idx := indexOfName(allNames, name)
		if idx < 0 {
			return nil, &SelectionError{Name: name}
		}
		indices[j] = idx + first
	}

	names := append([]string(nil), requested...)
	if rows == 0 || len(indices) == 0 {
		return &ExtractedMatrix{Time: timeAxis, Names: names}, nil
	}
	out := mat.NewDense(rows, len(indices), nil)
	for j, idx := range indices {
		for i := 0; i < rows; i++ {
			out.Set(i, j, raw.Data[i*cols+idx])
		}
	}
	return &ExtractedMatrix{Time: timeAxis, Channels: out, Names: names}, nil
}

func extract1D(raw *Array, allNames []string) (*ExtractedMatrix, error) {
	name := fmt.Sprintf(BrowseNameTemplate, 1)
	if len(allNames) > 0 {
		name = allNames[0]
	}
	n := len(raw.Data)
	if n == 0 {
		return &ExtractedMatrix{Names: []string{name}}, nil
	}
	data := make([]float64, n)
	copy(data, raw.Data)
	return &ExtractedMatrix{
		Channels: mat.NewDense(n, 1, data),
		Names:    []string{name},
	}, nil
}

func defaultSelection(all []string, temporal bool) []string {
	n := defaultBrowseChannels
	if temporal {
		n = defaultTemporalChannels
	}
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

func indexOfName(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
