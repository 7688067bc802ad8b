package hview

// A synthetic multichannel sample file, for demos and tests. The layout
// mirrors the sample files used with the original analysis tool: sensor,
// signal, and environmental groups, with and without explicit channel
// names, plus one combined time+channels acquisition run.

import (
	"fmt"
	"math"
)

const (
	simSamples  = 2000
	simDuration = 10.0 // seconds
)

// NewSimulatedContainer builds an in-memory container with a realistic mix
// of datasets: a 1-D sine wave, several multi-column sensor arrays, and one
// temporal dataset whose first column is the time axis. Fully
// deterministic, so tests can assert on its contents.
func NewSimulatedContainer() *MemContainer {
	mc := NewMemContainer()
	t := make([]float64, simSamples)
	for i := range t {
		t[i] = simDuration * float64(i) / float64(simSamples-1)
	}

	// signals/sine_wave: single channel, 1-D.
	sine := make([]float64, simSamples)
	for i := range sine {
		sine[i] = math.Sin(2 * math.Pi * 1.5 * t[i])
	}
	mc.AddDataset("signals/sine_wave", &Array{Dims: []int{simSamples}, Kind: KindFloat, Data: sine},
		map[string]interface{}{
			"description":   "Single channel sine wave",
			"frequency":     1.5,
			"sampling_rate": float64(simSamples) / simDuration,
			"units":         "V",
		})

	// sensors/daq_run: time column plus 8 named channels.
	const nchan = 8
	run := make([]float64, simSamples*(nchan+1))
	names := make([]string, nchan)
	for j := 0; j < nchan; j++ {
		names[j] = fmt.Sprintf("Sensor_%d", j+1)
	}
	for i := 0; i < simSamples; i++ {
		run[i*(nchan+1)] = t[i]
		for j := 0; j < nchan; j++ {
			freq := 0.5 + float64(j)*0.3
			amp := 1.0 + float64(j)*0.2
			run[i*(nchan+1)+j+1] = amp * math.Sin(2*math.Pi*freq*t[i])
		}
	}
	mc.AddDataset("sensors/daq_run", &Array{Dims: []int{simSamples, nchan + 1}, Kind: KindFloat, Data: run},
		map[string]interface{}{
			"description":   "Multi-channel acquisition run, column 0 is time",
			"channel_names": names,
			"sampling_rate": float64(simSamples) / simDuration,
			"units":         "mV",
		})

	// environmental/temperature: time plus 4 unnamed channels, so channel
	// naming must fall back to the positional template.
	const ntemp = 4
	temp := make([]float64, simSamples*(ntemp+1))
	for i := 0; i < simSamples; i++ {
		temp[i*(ntemp+1)] = t[i]
		for j := 0; j < ntemp; j++ {
			base := 20.0 + 5.0*float64(j)
			temp[i*(ntemp+1)+j+1] = base + 5.0*math.Sin(2*math.Pi*0.1*t[i])
		}
	}
	mc.AddDataset("environmental/temperature", &Array{Dims: []int{simSamples, ntemp + 1}, Kind: KindFloat, Data: temp},
		map[string]interface{}{
			"description":      "Temperature measurements from multiple sensors",
			"units":            "Celsius",
			"sensor_locations": []string{"Room_A", "Room_B", "Room_C", "Room_D"},
		})

	// sensors/vibration_3axis: three data columns, no time column. Column 0
	// oscillates, so the monotonicity probe must reject it.
	vib := make([]float64, simSamples*3)
	for i := 0; i < simSamples; i++ {
		vib[i*3+0] = 0.5 * math.Sin(2*math.Pi*10*t[i])
		vib[i*3+1] = 0.3 * math.Cos(2*math.Pi*15*t[i])
		vib[i*3+2] = 0.2 * math.Sin(2*math.Pi*20*t[i])
	}
	mc.AddDataset("sensors/vibration_3axis", &Array{Dims: []int{simSamples, 3}, Kind: KindFloat, Data: vib},
		map[string]interface{}{
			"description": "3-axis accelerometer data",
			"units":       "g",
			"axes":        []string{"X", "Y", "Z"},
		})

	// time_axis: the shared time reference.
	mc.AddDataset("time_axis", &Array{Dims: []int{simSamples}, Kind: KindFloat, Data: t},
		map[string]interface{}{
			"description": "Time axis for all measurements",
			"units":       "seconds",
		})

	mc.SetGroupAttrs("", map[string]interface{}{
		"created_by":    "hview sample data generator",
		"total_samples": simSamples,
		"duration":      simDuration,
	})
	return mc
}
