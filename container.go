package hview

// The read-only model of one open hierarchical data file: groups, datasets,
// and attributes. Format decoding (HDF5 and friends) lives behind the
// Container interface; this package only consumes it.

import (
	"io"

	"gonum.org/v1/gonum/mat"
)

// NodeKind distinguishes the two kinds of nodes in a hierarchical container.
type NodeKind int

const (
	// GroupNode is an internal node holding named children.
	GroupNode NodeKind = iota
	// DatasetNode is a leaf node holding a numeric array.
	DatasetNode
)

// ChildInfo names one child of a group, in the container's own order.
type ChildInfo struct {
	Name string
	Kind NodeKind
}

// TypeKind classifies the element type of an array. Only the kind survives
// the read boundary; element widths do not matter to classification.
type TypeKind byte

const (
	KindInt     TypeKind = 'i'
	KindUint    TypeKind = 'u'
	KindFloat   TypeKind = 'f'
	KindComplex TypeKind = 'c'
	KindOther   TypeKind = 'O' // text, boolean-as-object, compound, etc.
)

func (k TypeKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	}
	return "other"
}

// Container is the scoped read view of one open hierarchical file. One user
// session holds exclusive access to one Container for the duration of a
// handling pass; Close releases the underlying handle. Paths are
// slash-joined names from the root, with "" naming the root group itself.
type Container interface {
	// Children lists the direct children of the group at path, in the
	// container's iteration order.
	Children(path string) ([]ChildInfo, error)

	// Shape reports the dimensions and element kind of the dataset at path
	// without materializing its data.
	Shape(path string) ([]int, TypeKind, error)

	// Read materializes the full dataset at path.
	Read(path string) (*Array, error)

	// ReadSlice materializes at most the first rows entries along the
	// leading axis of the dataset at path.
	ReadSlice(path string, rows int) (*Array, error)

	// Attributes returns the named attributes of the node at path, decoded
	// to canonical string form.
	Attributes(path string) (AttrMap, error)

	Close() error
}

// OpenFunc opens one hierarchical container from a byte stream. An
// implementation returns a *FormatError when the stream is not a valid
// container of its format.
type OpenFunc func(r io.Reader) (Container, error)

// Array is an N-dimensional numeric array materialized in memory. Element
// values are coerced to float64 at the read boundary; Kind records the
// element kind of the source so classification can still distinguish
// numeric from non-numeric data. Arrays are treated as immutable once read.
type Array struct {
	Dims []int
	Kind TypeKind
	Data []float64
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.Dims) }

// Rows returns the length of the leading axis, or 0 for a rank-0 array.
func (a *Array) Rows() int {
	if len(a.Dims) == 0 {
		return 0
	}
	return a.Dims[0]
}

// Cols returns the length of the second axis for rank-2 data, and 1
// otherwise: a 1-D array is one logical column.
func (a *Array) Cols() int {
	if len(a.Dims) < 2 {
		return 1
	}
	return a.Dims[1]
}

// Matrix returns a dense view of rank-1 or rank-2 data, with rank-1 data as
// a single column. It returns nil for higher ranks or empty arrays.
func (a *Array) Matrix() *mat.Dense {
	if a == nil || a.Rank() > 2 || a.Rows() == 0 {
		return nil
	}
	data := make([]float64, len(a.Data))
	copy(data, a.Data)
	return mat.NewDense(a.Rows(), a.Cols(), data)
}
