package hview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// newTestControl builds a ViewerControl whose status updates go to a
// buffered channel, so handlers never block in tests.
func newTestControl() (*ViewerControl, chan ClientUpdate) {
	updates := make(chan ClientUpdate, 100)
	vc := new(ViewerControl)
	vc.clientUpdates = updates
	return vc, updates
}

func TestViewerControlOpenAndScan(t *testing.T) {
	vc, updates := newTestControl()

	filename := "simulated"
	var okay bool
	assert.NoError(t, vc.OpenFile(&filename, &okay))
	assert.True(t, okay)
	assert.True(t, vc.status.FileOpen)
	assert.Equal(t, 2, vc.status.Ntemporal)

	// Opening twice without closing is refused.
	assert.Error(t, vc.OpenFile(&filename, &okay))

	// The open broadcast a STATUS and a SCAN update.
	first := <-updates
	assert.Equal(t, "STATUS", first.tag)
	second := <-updates
	assert.Equal(t, "SCAN", second.tag)

	var paths []string
	assert.NoError(t, vc.ListPaths(&filename, &paths))
	assert.Contains(t, paths, "sensors/daq_run")

	var temporal []TemporalDataset
	assert.NoError(t, vc.FindTemporal(&filename, &temporal))
	assert.Len(t, temporal, 2)

	assert.NoError(t, vc.CloseFile(&filename, &okay))
	assert.Error(t, vc.CloseFile(&filename, &okay), "closing twice should fail")
}

func TestViewerControlRequiresOpenFile(t *testing.T) {
	vc, _ := newTestControl()
	dummy := ""

	var paths []string
	assert.Error(t, vc.ListPaths(&dummy, &paths))
	var temporal []TemporalDataset
	assert.Error(t, vc.FindTemporal(&dummy, &temporal))
	var reply ExtractReply
	assert.Error(t, vc.ExtractStats(&ExtractArgs{Path: "x"}, &reply))
}

func TestViewerControlChannelNames(t *testing.T) {
	vc, _ := newTestControl()
	filename := "simulated"
	var okay bool
	assert.NoError(t, vc.OpenFile(&filename, &okay))
	defer vc.CloseFile(&filename, &okay)

	var names []string
	assert.NoError(t, vc.ChannelNames(&ChannelNamesArgs{Path: "sensors/daq_run", Temporal: true}, &names))
	assert.Len(t, names, 8)
	assert.Equal(t, "Sensor_1", names[0])

	assert.NoError(t, vc.ChannelNames(&ChannelNamesArgs{Path: "signals/sine_wave"}, &names))
	assert.Equal(t, []string{"Channel_1"}, names)
}

func TestViewerControlExtractStats(t *testing.T) {
	vc, _ := newTestControl()
	filename := "simulated"
	var okay bool
	assert.NoError(t, vc.OpenFile(&filename, &okay))
	defer vc.CloseFile(&filename, &okay)

	var reply ExtractReply
	args := &ExtractArgs{
		Path:       "sensors/daq_run",
		Channels:   []string{"Sensor_3", "Sensor_1"},
		MaxSamples: 250,
		Temporal:   true,
	}
	assert.NoError(t, vc.ExtractStats(args, &reply))
	assert.Equal(t, []string{"Sensor_3", "Sensor_1"}, reply.SelectedNames)
	assert.Len(t, reply.Stats, 2)
	assert.Equal(t, 250, reply.Rows)
	assert.Equal(t, simSamples-250, reply.SamplesDropped)
	assert.Len(t, reply.AllNames, 8)

	// An unknown channel rejects just this request.
	args.Channels = []string{"Sensor_99"}
	assert.Error(t, vc.ExtractStats(args, &reply))
}

func TestViewerControlDescribe(t *testing.T) {
	vc, _ := newTestControl()
	filename := "simulated"
	var okay bool
	assert.NoError(t, vc.OpenFile(&filename, &okay))
	defer vc.CloseFile(&filename, &okay)

	path := "time_axis"
	var desc DatasetDescription
	assert.NoError(t, vc.Describe(&path, &desc))
	assert.Equal(t, []int{simSamples}, desc.Shape)
	assert.Equal(t, "float", desc.Dtype)
	assert.Equal(t, "seconds", desc.Attributes["units"])
}

func TestViewerControlExports(t *testing.T) {
	vc, _ := newTestControl()
	filename := "simulated"
	var okay bool
	assert.NoError(t, vc.OpenFile(&filename, &okay))
	defer vc.CloseFile(&filename, &okay)

	dir := t.TempDir()
	base := ExtractArgs{Path: "sensors/daq_run", Temporal: true, MaxSamples: 100}

	for _, what := range []string{"data", "stats", "attributes"} {
		var name string
		args := &ExportArgs{ExtractArgs: base, Directory: dir, What: what}
		assert.NoError(t, vc.ExportCSV(args, &name))
		info, err := os.Stat(name)
		assert.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
		assert.Equal(t, dir, filepath.Dir(name))
	}

	var name string
	args := &ExportArgs{ExtractArgs: base, Directory: dir}
	assert.NoError(t, vc.ExportNPY(args, &name))
	f, err := os.Open(name)
	assert.NoError(t, err)
	defer f.Close()
	c, err := OpenNPY(f)
	assert.NoError(t, err)
	defer c.Close()
	shape, _, err := c.Shape("data")
	assert.NoError(t, err)
	assert.Equal(t, []int{100, 4}, shape, "time + default 3 channels, limited to 100 rows")

	var bad string
	assert.Error(t, vc.ExportCSV(&ExportArgs{ExtractArgs: base, Directory: dir, What: "nope"}, &bad))
}
