package hview

// A container opener for bare NumPy .npy byte streams. An .npy file holds a
// single array, so it opens as a container with one dataset named "data" at
// the root. This is the opener the server uses out of the box; richer
// formats (HDF5) plug in through the same OpenFunc signature.

import (
	"fmt"
	"io"
	"strings"

	"github.com/sbinet/npyio"
)

// npyDatasetName is the path of the single dataset in an opened .npy
// container.
const npyDatasetName = "data"

// OpenNPY reads one .npy array from r and wraps it as a Container. A stream
// that is not a valid .npy file yields a *FormatError. Element types
// outside int/uint/float open as a non-plottable dataset rather than
// failing, mirroring how unreadable datasets fall back elsewhere.
func OpenNPY(r io.Reader) (Container, error) {
	npr, err := npyio.NewReader(r)
	if err != nil {
		return nil, &FormatError{Format: "npy", Reason: err.Error()}
	}
	header := npr.Header
	if header.Descr.Fortran {
		return nil, &FormatError{Format: "npy", Reason: "fortran-order arrays are not supported"}
	}

	dims := append([]int(nil), header.Descr.Shape...)
	array, err := readNPYData(npr, header.Descr.Type, dims)
	if err != nil {
		return nil, &FormatError{Format: "npy", Reason: err.Error()}
	}

	mc := NewMemContainer()
	mc.AddDataset(npyDatasetName, array, map[string]interface{}{
		"dtype": header.Descr.Type,
	})
	return mc, nil
}

func readNPYData(r *npyio.Reader, dtype string, dims []int) (*Array, error) {
	n := 1
	for _, d := range dims {
		n *= d
	}

	kind, width := npyKind(dtype)
	data := make([]float64, 0, n)
	switch {
	case kind == KindFloat && width == 8:
		var raw []float64
		if err := r.Read(&raw); err != nil {
			return nil, err
		}
		data = raw
	case kind == KindFloat && width == 4:
		var raw []float32
		if err := r.Read(&raw); err != nil {
			return nil, err
		}
		for _, v := range raw {
			data = append(data, float64(v))
		}
	case kind == KindInt:
		var raw []int64
		if width == 4 {
			var raw32 []int32
			if err := r.Read(&raw32); err != nil {
				return nil, err
			}
			for _, v := range raw32 {
				raw = append(raw, int64(v))
			}
		} else if err := r.Read(&raw); err != nil {
			return nil, err
		}
		for _, v := range raw {
			data = append(data, float64(v))
		}
	case kind == KindUint:
		var raw []uint64
		if width == 4 {
			var raw32 []uint32
			if err := r.Read(&raw32); err != nil {
				return nil, err
			}
			for _, v := range raw32 {
				raw = append(raw, uint64(v))
			}
		} else if err := r.Read(&raw); err != nil {
			return nil, err
		}
		for _, v := range raw {
			data = append(data, float64(v))
		}
	default:
		// Unsupported element type: keep the shape so the browse view can
		// still describe the dataset, with no chartable payload.
		return &Array{Dims: dims, Kind: KindOther}, nil
	}

	if len(data) != n {
		return nil, fmt.Errorf("array holds %d elements, header shape %v wants %d", len(data), dims, n)
	}
	return &Array{Dims: dims, Kind: kind, Data: data}, nil
}

// npyKind maps a NumPy dtype string like "<f8" onto a TypeKind and element
// width in bytes.
func npyKind(dtype string) (TypeKind, int) {
	s := strings.TrimLeft(dtype, "<>=|")
	if len(s) < 2 {
		return KindOther, 0
	}
	width := int(s[len(s)-1] - '0')
	switch s[0] {
	case 'f':
		return KindFloat, width
	case 'i':
		return KindInt, width
	case 'u':
		return KindUint, width
	case 'c':
		return KindComplex, width
	}
	return KindOther, 0
}
