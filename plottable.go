package hview

// IsPlottable reports whether v holds chartable data: an in-memory numeric
// array (integer, unsigned, float, or complex elements) of rank at most 2.
// Text and object-typed values get a raw fallback display in the browse
// view instead of a chart. Pure and total; never panics.
func IsPlottable(v *Array) bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case KindInt, KindUint, KindFloat, KindComplex:
	default:
		return false
	}
	return v.Rank() <= 2
}
