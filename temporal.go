package hview

// Discovery of "time + channels" datasets: 2-D arrays whose first column
// looks like a non-decreasing time axis.

// probeWindow is the number of leading rows examined when testing whether a
// dataset's first column is non-decreasing. A dataset whose time column
// first decreases after this window is still classified as temporal. That
// is a known limitation of the heuristic, accepted so discovery never has
// to materialize a large array.
const probeWindow = 100

// TemporalDataset describes one discovered time+channels dataset.
type TemporalDataset struct {
	Path     string
	Shape    []int
	Dtype    string
	Channels int // data columns, excluding the time column
}

// FindTemporalDatasets walks the container and returns a descriptor for
// every dataset that qualifies as temporal: rank 2, at least 2 columns, and
// a first column that is non-decreasing over the probe window. Results
// follow the walk's depth-first order.
//
// A candidate that fails a probe read or comparison is skipped silently: a
// scan of the whole tree must never abort because of one bad node.
func FindTemporalDatasets(c Container) []TemporalDataset {
	nodes, err := walkNodes(c, "")
	if err != nil {
		return nil
	}
	var found []TemporalDataset
	for _, n := range nodes {
		if n.Kind != DatasetNode {
			continue
		}
		if td, ok := probeTemporal(c, n.Path); ok {
			found = append(found, td)
		}
	}
	return found
}

// probeTemporal qualifies a single dataset. The false return covers every
// failure mode: wrong rank, too few columns, non-numeric elements, a read
// error, or a decreasing time column within the probe window.
func probeTemporal(c Container, path string) (TemporalDataset, bool) {
	shape, kind, err := c.Shape(path)
	if err != nil || len(shape) != 2 || shape[1] < 2 {
		return TemporalDataset{}, false
	}
	switch kind {
	case KindInt, KindUint, KindFloat, KindComplex:
	default:
		return TemporalDataset{}, false
	}

	rows := shape[0]
	if rows > probeWindow {
		rows = probeWindow
	}
	sample, err := c.ReadSlice(path, rows)
	if err != nil || sample == nil || len(sample.Data) < rows*shape[1] {
		return TemporalDataset{}, false
	}
	cols := shape[1]
	for i := 1; i < rows; i++ {
		// Written as >= so that a NaN anywhere in the time column
		// disqualifies the dataset, the same as a decreasing value.
		if !(sample.Data[i*cols] >= sample.Data[(i-1)*cols]) {
			return TemporalDataset{}, false
		}
	}

	return TemporalDataset{
		Path:     path,
		Shape:    shape,
		Dtype:    kind.String(),
		Channels: shape[1] - 1,
	}, true
}
