// Package scoreboard implements the timing pipeline's busyboard: the
// hazard-tracking structure that gates decode and governs when a retiring
// instruction's write targets become available again.
package scoreboard

import "github.com/sarchlab/vmipssim/isa"

// Board tracks in-flight write targets. Each scalar and vector register has
// its own busy flag, and the vector-length and vector-mask registers get
// dedicated flags rather than sharing the scalar array under reserved
// indices — VMR and VLR are architectural registers in their own right, not
// slots 8 and 9 of the scalar bank.
type Board struct {
	srfBusy [isa.NumRegisters]bool
	vrfBusy [isa.NumRegisters]bool
	vmrBusy bool
	vlrBusy bool
}

// New returns a Board with every resource free.
func New() *Board {
	return &Board{}
}

// Free reports whether every register operand of ins, plus any VMR/VLR the
// opcode reads or writes, is currently free. Branches bypass this check
// entirely at the call site — their operands are already resolved by the
// time they reach decode.
func (b *Board) Free(ins isa.Instruction) bool {
	for _, op := range ins.Ops {
		if op.IsImm {
			continue
		}
		switch op.Reg.Kind {
		case isa.Scalar:
			if b.srfBusy[op.Reg.Index] {
				return false
			}
		case isa.Vector:
			if b.vrfBusy[op.Reg.Index] {
				return false
			}
		}
	}
	if isVMRScalar(ins.Opcode) || isVecOp(ins.Opcode) {
		if b.vmrBusy {
			return false
		}
	}
	if isVLRScalar(ins.Opcode) || isVecOp(ins.Opcode) {
		if b.vlrBusy {
			return false
		}
	}
	return true
}

// Mark busies every resource ins's dispatch touches: every vector register
// operand (source or destination alike, since the vector file is treated as
// a single serializing resource per register), the VMR if the opcode writes
// the mask, the VLR if the opcode writes the vector length, and the
// destination scalar register for opcodes with one.
func (b *Board) Mark(ins isa.Instruction) {
	for _, op := range ins.Ops {
		if !op.IsImm && op.Reg.Kind == isa.Vector {
			b.vrfBusy[op.Reg.Index] = true
		}
	}
	if ins.Opcode == "CVM" || isa.VectorCompareOps[ins.Opcode] {
		b.vmrBusy = true
	}
	if ins.Opcode == "MTCL" {
		b.vlrBusy = true
	}
	if isa.ScalarDstOps[ins.Opcode] {
		b.srfBusy[ins.Dst().Reg.Index] = true
	}
}

// Unmark reverses Mark, freeing the same resources on retirement.
func (b *Board) Unmark(ins isa.Instruction) {
	for _, op := range ins.Ops {
		if !op.IsImm && op.Reg.Kind == isa.Vector {
			b.vrfBusy[op.Reg.Index] = false
		}
	}
	if ins.Opcode == "CVM" || isa.VectorCompareOps[ins.Opcode] {
		b.vmrBusy = false
	}
	if ins.Opcode == "MTCL" {
		b.vlrBusy = false
	}
	if isa.ScalarDstOps[ins.Opcode] {
		b.srfBusy[ins.Dst().Reg.Index] = false
	}
}

func isVMRScalar(opcode string) bool { return isa.VMRScalarOps[opcode] }
func isVLRScalar(opcode string) bool { return isa.VLRScalarOps[opcode] }
func isVecOp(opcode string) bool     { return isa.VectorOps[opcode] }
