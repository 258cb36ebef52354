package isa

import "fmt"

// Operand is either a Register or an integer immediate.
type Operand struct {
	Reg   Register
	Imm   int64
	IsImm bool
}

// NewRegOperand wraps a register as an operand.
func NewRegOperand(r Register) Operand {
	return Operand{Reg: r}
}

// NewImmOperand wraps an immediate as an operand.
func NewImmOperand(v int64) Operand {
	return Operand{Imm: v, IsImm: true}
}

// String renders the operand the way the decoder would have read it back:
// "SR<i>"/"VR<i>" for registers, decimal for immediates.
func (o Operand) String() string {
	if o.IsImm {
		return fmt.Sprintf("%d", o.Imm)
	}
	return o.Reg.String()
}

// Annotation records the runtime value the functional core attaches to a
// traced instruction: a single scalar (address, a branch's next PC, vector
// length) or a list of values (vector memory addresses).
type Annotation struct {
	Present bool
	Values  []int64 // len==1 for scalar annotations
}

// ScalarAnnotation builds a single-value annotation.
func ScalarAnnotation(v int64) Annotation {
	return Annotation{Present: true, Values: []int64{v}}
}

// VectorAnnotation builds a multi-value annotation.
func VectorAnnotation(vs []int64) Annotation {
	return Annotation{Present: true, Values: append([]int64(nil), vs...)}
}

// IsScalar reports whether the annotation holds exactly one value.
func (a Annotation) IsScalar() bool {
	return a.Present && len(a.Values) == 1
}

// Instruction is an opcode plus its operand list, optionally annotated
// with the runtime value recorded by the functional core for replay by
// the timing simulator.
type Instruction struct {
	Opcode     string
	Ops        []Operand
	Annotation Annotation
}

// Op returns the i-th operand.
func (ins Instruction) Op(i int) Operand {
	return ins.Ops[i]
}

// NumOps returns the number of operands.
func (ins Instruction) NumOps() int {
	return len(ins.Ops)
}

// Dst returns ops[0], the conventional destination operand.
func (ins Instruction) Dst() Operand {
	return ins.Ops[0]
}

// Src returns ops[i+1], the conventional i-th source operand.
func (ins Instruction) Src(i int) Operand {
	return ins.Ops[i+1]
}

// Imm returns ops[2], the conventional immediate operand.
func (ins Instruction) Imm() int64 {
	return ins.Ops[2].Imm
}

// String renders the instruction as "OPCODE op0 op1 ...", matching the
// un-annotated trace line format.
func (ins Instruction) String() string {
	s := ins.Opcode
	for _, op := range ins.Ops {
		s += " " + op.String()
	}
	return s
}

// Halt is the synthetic instruction IMEM returns for reads past the end of
// the loaded program.
var Halt = Instruction{Opcode: "HALT"}
