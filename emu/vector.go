package emu

import (
	"fmt"
	"os"

	"github.com/sarchlab/vmipssim/bitvec"
	"github.com/sarchlab/vmipssim/isa"
)

// execVectorVectorALU implements ADDVV SUBVV MULVV DIVVV: for i in [0, VL),
// if VM[i], VRF[d][i] <- op(VRF[a][i], VRF[b][i]).
func execVectorVectorALU(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	veca, err := c.vrf.Read(ins.Src(0).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	vecb, err := c.vrf.Read(ins.Src(1).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}

	res := make([]bitvec.BitVec, isa.MVL)
	for i := 0; i < c.vl; i++ {
		if !c.vm[i] {
			continue
		}
		v, err := vectorALUOp(ins.Opcode, veca[i], vecb[i])
		if err != nil {
			return isa.Annotation{}, err
		}
		res[i] = v
	}

	if err := c.vrf.WriteVector(ins.Dst().Reg, res, c.vm[:], c.vl); err != nil {
		return isa.Annotation{}, err
	}
	return isa.ScalarAnnotation(int64(c.vl)), nil
}

// execVectorScalarALU implements ADDVS SUBVS MULVS DIVVS: same as the
// vector-vector form but the second operand is a scalar, broadcast.
func execVectorScalarALU(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	veca, err := c.vrf.Read(ins.Src(0).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	b, err := c.srf.ReadScalar(ins.Src(1).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}

	res := make([]bitvec.BitVec, isa.MVL)
	opcode := ins.Opcode[:len(ins.Opcode)-1] + "V" // ADDVS -> ADDVV etc.
	for i := 0; i < c.vl; i++ {
		if !c.vm[i] {
			continue
		}
		v, err := vectorALUOp(opcode, veca[i], b)
		if err != nil {
			return isa.Annotation{}, err
		}
		res[i] = v
	}

	if err := c.vrf.WriteVector(ins.Dst().Reg, res, c.vm[:], c.vl); err != nil {
		return isa.Annotation{}, err
	}
	return isa.ScalarAnnotation(int64(c.vl)), nil
}

func vectorALUOp(vvOpcode string, a, b bitvec.BitVec) (bitvec.BitVec, error) {
	switch vvOpcode {
	case "ADDVV":
		return bitvec.Add(a, b), nil
	case "SUBVV":
		return bitvec.Sub(a, b), nil
	case "MULVV":
		return bitvec.Mul(a, b), nil
	case "DIVVV":
		res, divByZero := bitvec.Div(a, b)
		if divByZero {
			fmt.Fprintf(os.Stderr, "warning: divide by zero, saturating result\n")
		}
		return res, nil
	default:
		return bitvec.BitVec{}, fmt.Errorf("vectorALUOp: unsupported opcode %s", vvOpcode)
	}
}
