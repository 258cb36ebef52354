// Command vmips-timing runs the cycle-accurate timing simulator: it
// replays a previously recorded instruction trace against a
// microarchitectural configuration and reports the resulting cycle
// count.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sarchlab/vmipssim/timing/core"
	"github.com/sarchlab/vmipssim/timing/pipeline"
)

var (
	iodir     = flag.String("iodir", "", "Path to the folder containing Config.txt and trace.txt")
	cyclewise = flag.Bool("cyclewise", false, "Write a per-cycle pipeline log to CycleLog.txt")
)

func main() {
	flag.Parse()

	if *iodir == "" {
		fmt.Fprintln(os.Stderr, "Usage: vmips-timing --iodir <path> [--cyclewise]")
		os.Exit(1)
	}

	if err := run(*iodir, *cyclewise); err != nil {
		fmt.Fprintln(os.Stderr, "vmips-timing:", err)
		os.Exit(1)
	}
}

func run(iodir string, cyclewise bool) error {
	var opts []pipeline.Option
	if cyclewise {
		logFile, err := os.Create(filepath.Join(iodir, "CycleLog.txt"))
		if err != nil {
			return err
		}
		defer logFile.Close()
		opts = append(opts, pipeline.WithCycleLog(logFile))
	}

	tracePath := filepath.Join(iodir, "trace.txt")
	c, err := core.NewCore(iodir, tracePath, opts...)
	if err != nil {
		return err
	}

	stats := c.Run()

	fmt.Printf("Total Instructions: %d\n", stats.Instructions)
	fmt.Printf("Total Cycles: %d\n", stats.Cycles)
	fmt.Printf("CPI: %.2f\n", stats.CPI)
	fmt.Printf("\n")
	fmt.Printf("Breakdown:\n")
	fmt.Printf("  Data queue depth:    %d\n", c.Config.DataQueueDepth)
	fmt.Printf("  Compute queue depth: %d\n", c.Config.ComputeQueueDepth)
	fmt.Printf("  Lanes:               %d\n", c.Config.NumLanes)
	fmt.Printf("  Banks:               %d\n", c.Config.VDMNumBanks)

	return nil
}
