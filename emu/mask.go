package emu

import (
	"fmt"
	"strings"

	"github.com/sarchlab/vmipssim/bitvec"
	"github.com/sarchlab/vmipssim/isa"
)

// execCompareVV implements SEQVV SNEVV SGTVV SLTVV SGEVV SLEVV: writes all
// MVL mask positions regardless of VL, comparing corresponding vector
// elements as signed.
func execCompareVV(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	veca, err := c.vrf.Read(ins.Op(0).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	vecb, err := c.vrf.Read(ins.Op(1).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}

	pred, err := compareOp(ins.Opcode)
	if err != nil {
		return isa.Annotation{}, err
	}
	for i := 0; i < isa.MVL; i++ {
		c.vm[i] = pred(veca[i].Signed(), vecb[i].Signed())
	}
	return isa.Annotation{}, nil
}

// execCompareVS implements SEQVS SNEVS SGTVS SLTVS SGEVS SLEVS: same as the
// vector-vector compare, but the second operand is a broadcast scalar.
func execCompareVS(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	veca, err := c.vrf.Read(ins.Op(0).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	b, err := c.srf.ReadScalar(ins.Op(1).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}

	opcode := strings.TrimSuffix(ins.Opcode, "S") + "V"
	pred, err := compareOp(opcode)
	if err != nil {
		return isa.Annotation{}, err
	}
	bv := b.Signed()
	for i := 0; i < isa.MVL; i++ {
		c.vm[i] = pred(veca[i].Signed(), bv)
	}
	return isa.Annotation{}, nil
}

func compareOp(vvOpcode string) (func(a, b int64) bool, error) {
	switch vvOpcode {
	case "SEQVV":
		return func(a, b int64) bool { return a == b }, nil
	case "SNEVV":
		return func(a, b int64) bool { return a != b }, nil
	case "SGTVV":
		return func(a, b int64) bool { return a > b }, nil
	case "SLTVV":
		return func(a, b int64) bool { return a < b }, nil
	case "SGEVV":
		return func(a, b int64) bool { return a >= b }, nil
	case "SLEVV":
		return func(a, b int64) bool { return a <= b }, nil
	default:
		return nil, fmt.Errorf("compareOp: unsupported opcode %s", vvOpcode)
	}
}

// execCVM implements CVM: VM[i] <- 1 for all i, i.e. clear the masking
// effect so every lane is active.
func execCVM(c *Core, _ isa.Instruction) (isa.Annotation, error) {
	for i := range c.vm {
		c.vm[i] = true
	}
	return isa.Annotation{}, nil
}

// execPOP implements POP d: SRF[d] <- popcount(VM).
func execPOP(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	count := 0
	for _, m := range c.vm {
		if m {
			count++
		}
	}
	return isa.Annotation{}, c.srf.WriteScalar(ins.Dst().Reg, bitvec.New(int64(count)))
}

// execMTCL implements MTCL d: VL <- SRF[d].unsigned.
func execMTCL(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	reg, err := c.srf.ReadScalar(ins.Op(0).Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	c.vl = int(reg.Unsigned())
	return isa.Annotation{}, nil
}

// execMFCL implements MFCL d: SRF[d] <- VL.
func execMFCL(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	return isa.Annotation{}, c.srf.WriteScalar(ins.Op(0).Reg, bitvec.New(int64(c.vl)))
}
