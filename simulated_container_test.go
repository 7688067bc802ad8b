package hview

import "testing"

func TestSimulatedContainerLayout(t *testing.T) {
	c := NewSimulatedContainer()
	defer c.Close()

	paths, err := WalkPaths(c)
	if err != nil {
		t.Fatal(err)
	}
	wantPaths := map[string]bool{
		"signals/sine_wave":         true,
		"sensors/daq_run":           true,
		"sensors/vibration_3axis":   true,
		"environmental/temperature": true,
		"time_axis":                 true,
	}
	seen := make(map[string]bool)
	for _, p := range paths {
		seen[p] = true
	}
	for p := range wantPaths {
		if !seen[p] {
			t.Errorf("simulated container is missing %q", p)
		}
	}
}

func TestSimulatedContainerDiscovery(t *testing.T) {
	c := NewSimulatedContainer()
	defer c.Close()

	found := FindTemporalDatasets(c)
	if len(found) != 2 {
		t.Fatalf("found %d temporal datasets, want 2 (daq_run and temperature): %v", len(found), found)
	}
	byPath := make(map[string]TemporalDataset)
	for _, td := range found {
		byPath[td.Path] = td
	}
	if td, ok := byPath["sensors/daq_run"]; !ok || td.Channels != 8 {
		t.Errorf("sensors/daq_run: %+v, want 8 channels", td)
	}
	if td, ok := byPath["environmental/temperature"]; !ok || td.Channels != 4 {
		t.Errorf("environmental/temperature: %+v, want 4 channels", td)
	}
}

func TestSimulatedContainerAttributes(t *testing.T) {
	c := NewSimulatedContainer()
	defer c.Close()

	attrs, err := c.Attributes("sensors/daq_run")
	if err != nil {
		t.Fatal(err)
	}
	names, ok := attrs["channel_names"]
	if !ok || !names.IsSeq || len(names.Sequence) != 8 {
		t.Fatalf("channel_names attribute = %+v, want sequence of 8", names)
	}
	if names.Sequence[0] != "Sensor_1" || names.Sequence[7] != "Sensor_8" {
		t.Errorf("channel names %v", names.Sequence)
	}

	root, err := c.Attributes("")
	if err != nil {
		t.Fatal(err)
	}
	if root["total_samples"].Scalar != "2000" {
		t.Errorf("root total_samples = %+v", root["total_samples"])
	}
}

func TestMemContainerClosed(t *testing.T) {
	mc := NewMemContainer()
	mc.AddDataset("d", temporalArray(4, 2), nil)
	if err := mc.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := mc.Read("d"); err == nil {
		t.Errorf("Read after Close should fail")
	}
	if _, _, err := mc.Shape("d"); err == nil {
		t.Errorf("Shape after Close should fail")
	}
	if _, err := mc.Attributes("d"); err == nil {
		t.Errorf("Attributes after Close should fail")
	}
}

func TestMemContainerReadSlice(t *testing.T) {
	mc := NewMemContainer()
	mc.AddDataset("d", temporalArray(30, 2), nil)
	a, err := mc.ReadSlice("d", 10)
	if err != nil {
		t.Fatal(err)
	}
	if a.Rows() != 10 {
		t.Errorf("ReadSlice returned %d rows, want 10", a.Rows())
	}
	if _, err := mc.ReadSlice("missing", 10); err == nil {
		t.Errorf("ReadSlice of a missing dataset should fail")
	}
}
