package hview

import "testing"

func TestLimitSamples(t *testing.T) {
	a := temporalArray(100, 3)

	limited, dropped := LimitSamples(a, 50)
	if dropped != 50 {
		t.Errorf("dropped = %d, want 50", dropped)
	}
	if limited.Rows() != 50 {
		t.Fatalf("limited to %d rows, want 50", limited.Rows())
	}
	// Head truncation: rows 0..49 exactly, in order.
	for i := 0; i < 50; i++ {
		if limited.Data[i*3] != float64(i) {
			t.Fatalf("row %d time = %v, want %d", i, limited.Data[i*3], i)
		}
	}
	if limited.Kind != a.Kind || limited.Dims[1] != 3 {
		t.Errorf("limit changed kind or trailing axes: %v %v", limited.Kind, limited.Dims)
	}
}

func TestLimitSamplesNoop(t *testing.T) {
	a := temporalArray(40, 2)

	for _, max := range []int{0, -5, 40, 100} {
		got, dropped := LimitSamples(a, max)
		if got != a || dropped != 0 {
			t.Errorf("LimitSamples(max=%d) should return the input unchanged", max)
		}
	}

	got, dropped := LimitSamples(nil, 10)
	if got != nil || dropped != 0 {
		t.Errorf("LimitSamples(nil) = %v, %d", got, dropped)
	}
}

func TestLimitSamples1D(t *testing.T) {
	a := &Array{Dims: []int{6}, Kind: KindInt, Data: []float64{0, 1, 2, 3, 4, 5}}
	limited, dropped := LimitSamples(a, 4)
	if dropped != 2 || limited.Rows() != 4 {
		t.Fatalf("1-D limit gave %d rows, %d dropped", limited.Rows(), dropped)
	}
	for i := 0; i < 4; i++ {
		if limited.Data[i] != float64(i) {
			t.Errorf("element %d = %v, want %d", i, limited.Data[i], i)
		}
	}
}
