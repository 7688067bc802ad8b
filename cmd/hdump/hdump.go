// The hdump tool scans a container file offline and prints what the viewer
// would discover: the node tree, the temporal datasets, and a per-channel
// statistics table for each one. Useful for checking a file before serving
// it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/usnistgov/hview"
)

func main() {
	simulated := flag.Bool("sim", false, "dump the built-in simulated container instead of a file")
	maxSamples := flag.Int("maxsamples", 0, "limit statistics to the first N samples (0 = no limit)")
	verbose := flag.Bool("v", false, "dump full descriptor structures")
	flag.Parse()

	var c hview.Container
	switch {
	case *simulated:
		c = hview.NewSimulatedContainer()
	case flag.NArg() == 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		c, err = hview.OpenNPY(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: hdump [-sim] [-maxsamples N] [-v] [file.npy]")
		os.Exit(1)
	}
	defer c.Close()

	paths, err := hview.WalkPaths(c)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Container holds %d nodes:\n", len(paths))
	for _, p := range paths {
		fmt.Println("  ", p)
	}

	temporal := hview.FindTemporalDatasets(c)
	fmt.Printf("\n%d temporal datasets found\n", len(temporal))
	if *verbose {
		spew.Dump(temporal)
	}

	for _, td := range temporal {
		fmt.Printf("\n%s: shape %v, %d channels\n", td.Path, td.Shape, td.Channels)
		result, err := hview.TemporalView(c, hview.ViewRequest{Path: td.Path, MaxSamples: *maxSamples})
		if err != nil {
			log.Printf("could not evaluate %s: %v", td.Path, err)
			continue
		}
		if result.SamplesDropped > 0 {
			fmt.Printf("  (%d samples dropped by the limit)\n", result.SamplesDropped)
		}
		fmt.Printf("  %-12s %12s %12s %12s %12s\n", "channel", "mean", "std", "min", "max")
		for _, row := range result.Stats {
			fmt.Printf("  %-12s %12.4f %12.4f %12.4f %12.4f\n",
				row.Name, row.Mean, row.StdDev, row.Min, row.Max)
		}
	}
}
