package emu

import (
	"fmt"

	"github.com/sarchlab/vmipssim/isa"
)

// execBranch implements BEQ BNE BGT BLT BGE BLE d1 d2 imm: compares two
// scalar sources as signed; on taken, PC <- PC + imm is applied by the
// caller via branchTaken/branchPC, else PC advances normally.
func execBranch(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	a, err := c.srf.ReadScalar(ins.Op(0).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	b, err := c.srf.ReadScalar(ins.Op(1).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	offset := ins.Imm()

	av, bv := a.Signed(), b.Signed()
	var taken bool
	switch ins.Opcode {
	case "BEQ":
		taken = av == bv
	case "BNE":
		taken = av != bv
	case "BGT":
		taken = av > bv
	case "BLT":
		taken = av < bv
	case "BGE":
		taken = av >= bv
	case "BLE":
		taken = av <= bv
	default:
		return isa.Annotation{}, fmt.Errorf("execBranch: unsupported opcode %s", ins.Opcode)
	}

	c.branchTaken = taken
	c.branchPC = c.pc + int(offset)

	next := c.pc + 1
	if taken {
		next = c.branchPC
	}
	return isa.ScalarAnnotation(int64(next)), nil
}
