// Package emu implements the functional vector-processor core: it executes
// a decoded instruction stream against scalar and vector register files and
// word-addressed data memories, with no notion of cycles or pipelining.
package emu

import (
	"fmt"

	"github.com/sarchlab/vmipssim/isa"
	"github.com/sarchlab/vmipssim/mem"
	"github.com/sarchlab/vmipssim/regfile"
	"github.com/sarchlab/vmipssim/trace"
)

// Core holds all functional-simulator state: the program counter, vector
// length and mask, the scalar and vector register files, and the memories
// it executes against.
type Core struct {
	imem  *mem.IMEM
	sdmem *mem.DMEM
	vdmem *mem.DMEM

	srf *regfile.File
	vrf *regfile.File

	pc int
	vl int
	vm [isa.MVL]bool

	halted      bool
	branchTaken bool
	branchPC    int

	tracer           *trace.Writer
	instructionCount uint64
	maxInstructions  uint64 // 0 means unlimited
}

// Option configures a Core at construction time.
type Option func(*Core)

// WithTrace attaches a trace writer; every retired instruction is appended
// to it, annotated per the rules in trace.Writer.
func WithTrace(w *trace.Writer) Option {
	return func(c *Core) {
		c.tracer = w
	}
}

// WithMaxInstructions caps the number of dynamic instructions Run will
// execute before stopping early. A value of 0 means unlimited.
func WithMaxInstructions(max uint64) Option {
	return func(c *Core) {
		c.maxInstructions = max
	}
}

// NewCore creates a functional core over the given memories, with VL
// initialized to MVL and VM fully set, matching a freshly reset machine.
func NewCore(imem *mem.IMEM, sdmem, vdmem *mem.DMEM, opts ...Option) *Core {
	c := &Core{
		imem:  imem,
		sdmem: sdmem,
		vdmem: vdmem,
		srf:   regfile.NewScalar(),
		vrf:   regfile.NewVector(),
		vl:    isa.MVL,
	}
	for i := range c.vm {
		c.vm[i] = true
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SRF returns the scalar register file, for dump/inspection.
func (c *Core) SRF() *regfile.File { return c.srf }

// VRF returns the vector register file, for dump/inspection.
func (c *Core) VRF() *regfile.File { return c.vrf }

// InstructionCount returns the number of dynamic instructions retired.
func (c *Core) InstructionCount() uint64 { return c.instructionCount }

// Halted reports whether the core has executed HALT.
func (c *Core) Halted() bool { return c.halted }

// Run executes instructions until HALT retires or the optional instruction
// cap is reached, whichever comes first.
func (c *Core) Run() error {
	for !c.halted {
		if c.maxInstructions > 0 && c.instructionCount >= c.maxInstructions {
			return fmt.Errorf("emu: exceeded max instruction count %d", c.maxInstructions)
		}
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step fetches, dispatches, and executes a single instruction, then
// advances PC to the branch target or PC+1.
func (c *Core) Step() error {
	c.branchTaken = false

	ins, err := c.imem.Read(c.pc)
	if err != nil {
		return fmt.Errorf("emu: fetch at PC=%d: %w", c.pc, err)
	}

	ann, err := c.execute(ins)
	if err != nil {
		return fmt.Errorf("emu: executing %s at PC=%d: %w", ins.Opcode, c.pc, err)
	}

	if c.tracer != nil {
		traced := ins
		traced.Annotation = ann
		if err := c.tracer.Write(traced); err != nil {
			return err
		}
	}

	if c.branchTaken {
		c.pc = c.branchPC
	} else {
		c.pc++
	}
	c.instructionCount++
	return nil
}

// handler is a per-opcode execution function: it mutates Core state and
// returns the trace annotation (isa.Annotation{} for none).
type handler func(*Core, isa.Instruction) (isa.Annotation, error)

// dispatch is a const opcode→handler table: every opcode's handler is known
// at compile time, so a plain map literal is both simpler and faster to
// verify than a registration mechanism.
var dispatch = map[string]handler{
	"ADD": execScalarALU, "SUB": execScalarALU, "AND": execScalarALU,
	"OR": execScalarALU, "XOR": execScalarALU,
	"SLL": execScalarALU, "SRL": execScalarALU, "SRA": execScalarALU,

	"LS": execLoadScalar, "SS": execStoreScalar,

	"ADDVV": execVectorVectorALU, "SUBVV": execVectorVectorALU,
	"MULVV": execVectorVectorALU, "DIVVV": execVectorVectorALU,

	"ADDVS": execVectorScalarALU, "SUBVS": execVectorScalarALU,
	"MULVS": execVectorScalarALU, "DIVVS": execVectorScalarALU,

	"LV": execLoadVector, "LVWS": execLoadVector, "LVI": execLoadVector,
	"SV": execStoreVector, "SVWS": execStoreVector, "SVI": execStoreVector,

	"BEQ": execBranch, "BNE": execBranch, "BGT": execBranch,
	"BLT": execBranch, "BGE": execBranch, "BLE": execBranch,

	"SEQVV": execCompareVV, "SNEVV": execCompareVV, "SGTVV": execCompareVV,
	"SLTVV": execCompareVV, "SGEVV": execCompareVV, "SLEVV": execCompareVV,

	"SEQVS": execCompareVS, "SNEVS": execCompareVS, "SGTVS": execCompareVS,
	"SLTVS": execCompareVS, "SGEVS": execCompareVS, "SLEVS": execCompareVS,

	"CVM": execCVM, "POP": execPOP, "MTCL": execMTCL, "MFCL": execMFCL,

	"HALT": execHalt,
}

func (c *Core) execute(ins isa.Instruction) (isa.Annotation, error) {
	h, ok := dispatch[ins.Opcode]
	if !ok {
		return isa.Annotation{}, fmt.Errorf("unknown opcode %q", ins.Opcode)
	}
	return h(c, ins)
}

func execHalt(c *Core, _ isa.Instruction) (isa.Annotation, error) {
	c.halted = true
	return isa.Annotation{}, nil
}
