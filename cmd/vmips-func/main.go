// Command vmips-func runs the functional vector-processor simulator: it
// loads a program and its data memories from an I/O directory, executes
// it to completion, and dumps architectural state back to that directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sarchlab/vmipssim/dump"
	"github.com/sarchlab/vmipssim/emu"
	"github.com/sarchlab/vmipssim/mem"
	"github.com/sarchlab/vmipssim/trace"
)

const (
	sdmemAddressBits = 13
	vdmemAddressBits = 17
)

var (
	iodir           = flag.String("iodir", "", "Path to the folder containing Code.asm, SDMEM.txt, VDMEM.txt")
	withTrace       = flag.Bool("trace", false, "Record the dynamic instruction trace to trace.txt")
	maxInstructions = flag.Uint64("max-instructions", 0, "Stop after this many dynamic instructions (0 = unlimited)")
)

func main() {
	flag.Parse()

	if *iodir == "" {
		fmt.Fprintln(os.Stderr, "Usage: vmips-func --iodir <path> [--trace] [--max-instructions N]")
		os.Exit(1)
	}

	if err := run(*iodir, *withTrace, *maxInstructions); err != nil {
		fmt.Fprintln(os.Stderr, "vmips-func:", err)
		os.Exit(1)
	}
}

func run(iodir string, withTrace bool, maxInstructions uint64) error {
	im, err := mem.LoadIMEM(filepath.Join(iodir, "Code.asm"))
	if err != nil {
		return err
	}

	sdmem := mem.NewDMEM("SDMEM", sdmemAddressBits)
	if err := sdmem.Load(filepath.Join(iodir, "SDMEM.txt")); err != nil {
		return err
	}
	vdmem := mem.NewDMEM("VDMEM", vdmemAddressBits)
	if err := vdmem.Load(filepath.Join(iodir, "VDMEM.txt")); err != nil {
		return err
	}

	var opts []emu.Option
	if maxInstructions > 0 {
		opts = append(opts, emu.WithMaxInstructions(maxInstructions))
	}

	var tw *trace.Writer
	if withTrace {
		tw, err = trace.NewWriter(filepath.Join(iodir, "trace.txt"))
		if err != nil {
			return err
		}
		opts = append(opts, emu.WithTrace(tw))
	}

	core := emu.NewCore(im, sdmem, vdmem, opts...)
	runErr := core.Run()

	if tw != nil {
		if err := tw.Close(); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	if err := dump.RegisterFile(iodir, "SRF", core.SRF().Rows(), core.SRF().Length()); err != nil {
		return err
	}
	if err := dump.RegisterFile(iodir, "VRF", core.VRF().Rows(), core.VRF().Length()); err != nil {
		return err
	}
	if err := sdmem.Dump(filepath.Join(iodir, "SDMEMOP.txt")); err != nil {
		return err
	}
	if err := vdmem.Dump(filepath.Join(iodir, "VDMEMOP.txt")); err != nil {
		return err
	}

	fmt.Printf("Instructions executed: %d\n", core.InstructionCount())
	return nil
}
