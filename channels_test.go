package hview

import (
	"errors"
	"testing"
)

func TestDeriveNamesFallback(t *testing.T) {
	// No channel_names attribute: positional names, stable across calls.
	first := DeriveNames(AttrMap{}, 2, BrowseNameTemplate)
	second := DeriveNames(AttrMap{}, 2, BrowseNameTemplate)
	want := []string{"Channel_1", "Channel_2"}
	for i := range want {
		if first[i] != want[i] || second[i] != want[i] {
			t.Fatalf("fallback names %v / %v, want %v", first, second, want)
		}
	}

	localized := DeriveNames(nil, 3, TemporalNameTemplate)
	wantLocal := []string{"Canal 1", "Canal 2", "Canal 3"}
	for i := range wantLocal {
		if localized[i] != wantLocal[i] {
			t.Errorf("localized[%d] = %q, want %q", i, localized[i], wantLocal[i])
		}
	}

	if names := DeriveNames(AttrMap{}, 0, BrowseNameTemplate); names != nil {
		t.Errorf("zero channels should derive no names, got %v", names)
	}
}

func TestDeriveNamesFromAttribute(t *testing.T) {
	attrs := DecodeAttrs(map[string]interface{}{
		"channel_names": []string{"Voltage", "Current"},
	})
	names := DeriveNames(attrs, 2, BrowseNameTemplate)
	if names[0] != "Voltage" || names[1] != "Current" {
		t.Errorf("names = %v, want [Voltage Current] verbatim", names)
	}

	// Wrong length: positional fallback, not a partial use of the attribute.
	names = DeriveNames(attrs, 3, BrowseNameTemplate)
	want := []string{"Channel_1", "Channel_2", "Channel_3"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("length-mismatch names = %v, want %v", names, want)
		}
	}

	// Scalar-typed attribute: also fallback.
	scalar := DecodeAttrs(map[string]interface{}{"channel_names": "Voltage"})
	names = DeriveNames(scalar, 1, BrowseNameTemplate)
	if names[0] != "Channel_1" {
		t.Errorf("scalar channel_names should be ignored, got %v", names)
	}
}

// rawSelection is a 4x4 temporal array: column 0 is time, then channels
// A=10+i, B=20+i, C=30+i.
func rawSelection() (*Array, []string) {
	data := make([]float64, 16)
	for i := 0; i < 4; i++ {
		data[i*4] = float64(i)
		data[i*4+1] = float64(10 + i)
		data[i*4+2] = float64(20 + i)
		data[i*4+3] = float64(30 + i)
	}
	a := &Array{Dims: []int{4, 4}, Kind: KindFloat, Data: data}
	return a, []string{"A", "B", "C"}
}

func TestExtractOrderPreserved(t *testing.T) {
	raw, all := rawSelection()
	m, err := Extract(raw, all, []string{"B", "A"}, true)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(m.Names) != 2 || m.Names[0] != "B" || m.Names[1] != "A" {
		t.Fatalf("Names = %v, want [B A]", m.Names)
	}
	for i := 0; i < 4; i++ {
		if m.Time[i] != float64(i) {
			t.Errorf("Time[%d] = %v, want %d", i, m.Time[i], i)
		}
		if m.Channels.At(i, 0) != float64(20+i) {
			t.Errorf("column 0 row %d = %v, want %d (channel B)", i, m.Channels.At(i, 0), 20+i)
		}
		if m.Channels.At(i, 1) != float64(10+i) {
			t.Errorf("column 1 row %d = %v, want %d (channel A)", i, m.Channels.At(i, 1), 10+i)
		}
	}
}

func TestExtractDefaultSelection(t *testing.T) {
	raw, all := rawSelection()

	// Temporal default: first min(3, n) channels.
	m, err := Extract(raw, all, nil, true)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(m.Names) != 3 {
		t.Fatalf("temporal default selected %d channels, want 3", len(m.Names))
	}

	// Browse default: first channel only. Here all 4 columns are channels.
	browseAll := []string{"T", "A", "B", "C"}
	m, err = Extract(raw, browseAll, nil, false)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(m.Names) != 1 || m.Names[0] != "T" {
		t.Fatalf("browse default = %v, want [T]", m.Names)
	}
	if m.Time != nil {
		t.Errorf("browse extraction must not split off a time axis")
	}
	if m.Channels.At(2, 0) != 2 {
		t.Errorf("browse column 0 row 2 = %v, want 2", m.Channels.At(2, 0))
	}
}

func TestExtractUnknownName(t *testing.T) {
	raw, all := rawSelection()
	_, err := Extract(raw, all, []string{"A", "Nope"}, true)
	var selErr *SelectionError
	if !errors.As(err, &selErr) {
		t.Fatalf("Extract with unknown name returned %v, want *SelectionError", err)
	}
	if selErr.Name != "Nope" {
		t.Errorf("SelectionError.Name = %q, want Nope", selErr.Name)
	}
}

func TestExtract1D(t *testing.T) {
	raw := &Array{Dims: []int{5}, Kind: KindFloat, Data: []float64{3, 1, 4, 1, 5}}
	m, err := Extract(raw, []string{"signal"}, nil, false)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(m.Names) != 1 || m.Names[0] != "signal" {
		t.Fatalf("Names = %v, want [signal]", m.Names)
	}
	rows, cols := m.Channels.Dims()
	if rows != 5 || cols != 1 {
		t.Fatalf("dims = %dx%d, want 5x1", rows, cols)
	}
	for i, want := range []float64{3, 1, 4, 1, 5} {
		if m.Channels.At(i, 0) != want {
			t.Errorf("row %d = %v, want %v", i, m.Channels.At(i, 0), want)
		}
	}
}

func TestExtractZeroRows(t *testing.T) {
	raw := &Array{Dims: []int{0, 3}, Kind: KindFloat}
	m, err := Extract(raw, []string{"A", "B"}, []string{"A"}, true)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if m.Rows() != 0 {
		t.Errorf("zero-row extraction has %d rows", m.Rows())
	}
	if len(m.Names) != 1 {
		t.Errorf("Names = %v, want [A]", m.Names)
	}
}

func TestExtractRejectsHighRank(t *testing.T) {
	raw := &Array{Dims: []int{2, 2, 2}, Kind: KindFloat, Data: make([]float64, 8)}
	if _, err := Extract(raw, nil, nil, false); err == nil {
		t.Errorf("rank-3 extraction should fail")
	}
}
