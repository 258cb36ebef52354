package emu

import (
	"fmt"

	"github.com/sarchlab/vmipssim/bitvec"
	"github.com/sarchlab/vmipssim/isa"
)

// execScalarALU implements ADD SUB AND OR XOR SLL SRL SRA: SRF[d] <- op(SRF[a], SRF[b]).
func execScalarALU(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	a, err := c.srf.ReadScalar(ins.Src(0).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	b, err := c.srf.ReadScalar(ins.Src(1).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}

	var res bitvec.BitVec
	switch ins.Opcode {
	case "ADD":
		res = bitvec.Add(a, b)
	case "SUB":
		res = bitvec.Sub(a, b)
	case "AND":
		res = bitvec.And(a, b)
	case "OR":
		res = bitvec.Or(a, b)
	case "XOR":
		res = bitvec.Xor(a, b)
	case "SLL":
		res = bitvec.Sll(a, b)
	case "SRL":
		res = bitvec.Srl(a, b)
	case "SRA":
		res = bitvec.Sra(a, b)
	default:
		return isa.Annotation{}, fmt.Errorf("execScalarALU: unsupported opcode %s", ins.Opcode)
	}

	return isa.Annotation{}, c.srf.WriteScalar(ins.Dst().Reg, res)
}

// execLoadScalar implements LS d a imm: SRF[d] <- SDMEM[SRF[a].unsigned + imm].
func execLoadScalar(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	base, err := c.srf.ReadScalar(ins.Src(0).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	addr := int(base.Unsigned()) + int(ins.Imm())

	val, err := c.sdmem.Read(addr)
	if err != nil {
		return isa.Annotation{}, err
	}
	if err := c.srf.WriteScalar(ins.Dst().Reg, val); err != nil {
		return isa.Annotation{}, err
	}
	return isa.ScalarAnnotation(int64(addr)), nil
}

// execStoreScalar implements SS d a imm: SDMEM[SRF[a].unsigned + imm] <- SRF[d].
func execStoreScalar(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	base, err := c.srf.ReadScalar(ins.Src(0).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	addr := int(base.Unsigned()) + int(ins.Imm())

	val, err := c.srf.ReadScalar(ins.Dst().Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	if err := c.sdmem.Write(addr, val); err != nil {
		return isa.Annotation{}, err
	}
	return isa.ScalarAnnotation(int64(addr)), nil
}
