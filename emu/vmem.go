package emu

import (
	"strings"

	"github.com/sarchlab/vmipssim/bitvec"
	"github.com/sarchlab/vmipssim/isa"
)

// memAddresses generates the MVL addresses a vector memory instruction
// touches, based on the LV/SV variant encoded in its opcode suffix: plain
// (stride 1), WS (strided, via a scalar stride register), or I (indexed,
// via a vector of offsets).
func memAddresses(c *Core, ins isa.Instruction) ([]int, error) {
	base, err := c.srf.ReadScalar(ins.Src(0).Reg)
	if err != nil {
		return nil, err
	}
	start := int(base.Unsigned())

	addrs := make([]int, isa.MVL)
	switch {
	case strings.HasSuffix(ins.Opcode, "WS"):
		strideVal, err := c.srf.ReadScalar(ins.Src(1).Reg)
		if err != nil {
			return nil, err
		}
		stride := int(strideVal.Unsigned())
		for i := range addrs {
			if stride > 0 {
				addrs[i] = start + i*stride
			} else {
				addrs[i] = start
			}
		}
	case strings.HasSuffix(ins.Opcode, "I"):
		offsets, err := c.vrf.Read(ins.Src(1).Reg)
		if err != nil {
			return nil, err
		}
		for i := range addrs {
			addrs[i] = start + int(offsets[i].Unsigned())
		}
	default:
		for i := range addrs {
			addrs[i] = start + i
		}
	}
	return addrs, nil
}

// execLoadVector implements LV/LVWS/LVI: read VDMEM at the generated
// addresses into VRF[d], masked and length-bounded by VL.
func execLoadVector(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	addrs, err := memAddresses(c, ins)
	if err != nil {
		return isa.Annotation{}, err
	}

	res := make([]bitvec.BitVec, isa.MVL)
	for i := 0; i < c.vl; i++ {
		if !c.vm[i] {
			continue
		}
		v, err := c.vdmem.Read(addrs[i])
		if err != nil {
			return isa.Annotation{}, err
		}
		res[i] = v
	}
	if err := c.vrf.WriteVector(ins.Dst().Reg, res, c.vm[:], c.vl); err != nil {
		return isa.Annotation{}, err
	}
	return isa.VectorAnnotation(toInt64s(addrs[:c.vl])), nil
}

// execStoreVector implements SV/SVWS/SVI: write VRF[d] to VDMEM at the
// generated addresses, masked and length-bounded by VL.
func execStoreVector(c *Core, ins isa.Instruction) (isa.Annotation, error) {
	addrs, err := memAddresses(c, ins)
	if err != nil {
		return isa.Annotation{}, err
	}

	vals, err := c.vrf.Read(ins.Dst().Reg)
	if err != nil {
		return isa.Annotation{}, err
	}
	for i := 0; i < c.vl; i++ {
		if !c.vm[i] {
			continue
		}
		if err := c.vdmem.Write(addrs[i], vals[i]); err != nil {
			return isa.Annotation{}, err
		}
	}
	return isa.VectorAnnotation(toInt64s(addrs[:c.vl])), nil
}

func toInt64s(vs []int) []int64 {
	out := make([]int64, len(vs))
	for i, v := range vs {
		out[i] = int64(v)
	}
	return out
}
