package hview

// LimitSamples truncates a to at most max entries along the leading axis:
// rows for 2-D data, elements for 1-D. A max of zero or less means no
// limit. The second return value is the number of dropped samples, which
// the display layer reports next to the chart.
//
// Truncation is always a head slice. Rows are never reordered or randomly
// sampled, so a limited temporal dataset keeps its leading time span.
func LimitSamples(a *Array, max int) (*Array, int) {
	if a == nil || max <= 0 || a.Rows() <= max {
		return a, 0
	}
	rowlen := 1
	for _, d := range a.Dims[1:] {
		rowlen *= d
	}
	dims := make([]int, len(a.Dims))
	copy(dims, a.Dims)
	dims[0] = max
	limited := &Array{Dims: dims, Kind: a.Kind, Data: a.Data[:max*rowlen]}
	return limited, a.Rows() - max
}
