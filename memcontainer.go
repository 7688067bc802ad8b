package hview

// MemContainer is an in-memory hierarchical container. It backs the
// simulated sample file, the NPY opener, and the package tests; real file
// formats implement Container over their own handles.

import (
	"fmt"
	"strings"
)

type memDataset struct {
	array *Array
	attrs AttrMap
}

// MemContainer holds a tree of groups and datasets entirely in memory.
// Children keep insertion order, matching the native iteration order a file
// reader would report.
type MemContainer struct {
	children map[string][]ChildInfo // group path -> ordered children; "" is the root
	datasets map[string]*memDataset
	attrs    map[string]AttrMap // group attributes
	closed   bool
}

// NewMemContainer returns an empty container holding only a root group.
func NewMemContainer() *MemContainer {
	return &MemContainer{
		children: map[string][]ChildInfo{"": nil},
		datasets: make(map[string]*memDataset),
		attrs:    make(map[string]AttrMap),
	}
}

// AddGroup creates the group at path, along with any missing parents.
func (mc *MemContainer) AddGroup(path string) {
	mc.ensureGroup(path)
}

// SetGroupAttrs attaches raw attributes to the group at path, decoding them
// at this boundary.
func (mc *MemContainer) SetGroupAttrs(path string, raw map[string]interface{}) {
	mc.ensureGroup(path)
	mc.attrs[path] = DecodeAttrs(raw)
}

// AddDataset stores a dataset at path, creating parent groups as needed.
// Raw attributes are decoded at this boundary.
func (mc *MemContainer) AddDataset(path string, a *Array, raw map[string]interface{}) {
	parent, name := splitPath(path)
	mc.ensureGroup(parent)
	mc.children[parent] = append(mc.children[parent], ChildInfo{Name: name, Kind: DatasetNode})
	mc.datasets[path] = &memDataset{array: a, attrs: DecodeAttrs(raw)}
}

func (mc *MemContainer) ensureGroup(path string) {
	if _, ok := mc.children[path]; ok {
		return
	}
	parent, name := splitPath(path)
	mc.ensureGroup(parent)
	mc.children[parent] = append(mc.children[parent], ChildInfo{Name: name, Kind: GroupNode})
	mc.children[path] = nil
}

func splitPath(path string) (parent, name string) {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i], path[i+1:]
	}
	return "", path
}

// Children implements Container.
func (mc *MemContainer) Children(path string) ([]ChildInfo, error) {
	if mc.closed {
		return nil, fmt.Errorf("container is closed")
	}
	children, ok := mc.children[path]
	if !ok {
		return nil, fmt.Errorf("no group at %q", path)
	}
	return children, nil
}

// Shape implements Container.
func (mc *MemContainer) Shape(path string) ([]int, TypeKind, error) {
	ds, err := mc.dataset(path)
	if err != nil {
		return nil, KindOther, err
	}
	dims := make([]int, len(ds.array.Dims))
	copy(dims, ds.array.Dims)
	return dims, ds.array.Kind, nil
}

// Read implements Container.
func (mc *MemContainer) Read(path string) (*Array, error) {
	ds, err := mc.dataset(path)
	if err != nil {
		return nil, err
	}
	return ds.array, nil
}

// ReadSlice implements Container.
func (mc *MemContainer) ReadSlice(path string, rows int) (*Array, error) {
	a, err := mc.Read(path)
	if err != nil {
		return nil, err
	}
	limited, _ := LimitSamples(a, rows)
	return limited, nil
}

// Attributes implements Container. Groups without attributes report an
// empty map, like a file reader would.
func (mc *MemContainer) Attributes(path string) (AttrMap, error) {
	if mc.closed {
		return nil, fmt.Errorf("container is closed")
	}
	if ds, ok := mc.datasets[path]; ok {
		return ds.attrs, nil
	}
	if _, ok := mc.children[path]; ok {
		if attrs, ok := mc.attrs[path]; ok {
			return attrs, nil
		}
		return AttrMap{}, nil
	}
	return nil, fmt.Errorf("no node at %q", path)
}

// Close implements Container. Further calls on a closed container fail.
func (mc *MemContainer) Close() error {
	mc.closed = true
	return nil
}

func (mc *MemContainer) dataset(path string) (*memDataset, error) {
	if mc.closed {
		return nil, fmt.Errorf("container is closed")
	}
	ds, ok := mc.datasets[path]
	if !ok {
		return nil, fmt.Errorf("no dataset at %q", path)
	}
	return ds, nil
}
