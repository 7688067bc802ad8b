package hview

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Attribute values arrive from file readers as scalars, byte strings, or
// homogeneous sequences of unknown element type. They are decoded exactly
// once, at the container boundary, so everything downstream sees canonical
// strings.

// AttrValue is a decoded attribute: either a single scalar or an ordered
// sequence of strings.
type AttrValue struct {
	Scalar   string
	Sequence []string
	IsSeq    bool
}

// String renders the value for tabular display.
func (v AttrValue) String() string {
	if v.IsSeq {
		return "[" + strings.Join(v.Sequence, ", ") + "]"
	}
	return v.Scalar
}

// AttrMap holds the decoded attributes of one node.
type AttrMap map[string]AttrValue

// Names lists the attribute names in sorted order, so attribute tables and
// exports are deterministic.
func (m AttrMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DecodeAttr converts a raw attribute value from a file reader into its
// canonical form. Byte strings become text; any slice or array becomes a
// Sequence with each element formatted; everything else is a Scalar.
// DecodeAttr is total: it never fails, no matter the input.
func DecodeAttr(v interface{}) AttrValue {
	switch x := v.(type) {
	case nil:
		return AttrValue{}
	case string:
		return AttrValue{Scalar: x}
	case []byte:
		return AttrValue{Scalar: string(x)}
	case []string:
		return AttrValue{IsSeq: true, Sequence: append([]string(nil), x...)}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		seq := make([]string, rv.Len())
		for i := range seq {
			seq[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		return AttrValue{IsSeq: true, Sequence: seq}
	}
	return AttrValue{Scalar: fmt.Sprint(v)}
}

// DecodeAttrs decodes a whole raw attribute mapping.
func DecodeAttrs(raw map[string]interface{}) AttrMap {
	attrs := make(AttrMap, len(raw))
	for name, v := range raw {
		attrs[name] = DecodeAttr(v)
	}
	return attrs
}
