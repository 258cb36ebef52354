package pipeline

import (
	"math"
	"strings"

	"github.com/sarchlab/vmipssim/isa"
)

// dispatchVecData moves the head of the vector-data queue into the
// load-store unit, striping its addresses across lanes modulo the lane
// count. It returns true if it dispatched (whether or not it's the path
// the caller ultimately takes priority on).
func (p *Pipeline) dispatchVecData() bool {
	if len(p.vecDataQ) == 0 {
		return false
	}
	ins := p.vecDataQ[0]
	p.logf("  dispatch vmem: %s", ins.String())
	if !p.memFree {
		return false
	}

	p.memIns = &ins
	p.memFree = false
	p.vecDataQ = p.vecDataQ[1:]

	addrs := toInts(ins.Annotation.Values)
	lanes := p.cfg.NumLanes
	p.addrQueues = make([][]int, lanes)
	for i := 0; i < lanes; i++ {
		for j := i; j < len(addrs); j += lanes {
			p.addrQueues[i] = append(p.addrQueues[i], addrs[j])
		}
	}
	p.addrsRemaining = len(addrs)
	for i := 0; i < lanes; i++ {
		if len(p.addrQueues[i]) > 0 {
			p.lanePipes[i][0] = laneSlot{valid: true, addr: p.addrQueues[i][0]}
			p.addrQueues[i] = p.addrQueues[i][1:]
		}
	}
	return true
}

func toInts(vs []int64) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = int(v)
	}
	return out
}

// pipelineDepthFor returns the functional unit depth an opcode dispatches
// to: multiply, divide, or the shared adder (every other vector-compute
// opcode, including the compare-to-mask forms).
func pipelineDepthFor(opcode string, mul, div, add int) int {
	switch {
	case strings.HasPrefix(opcode, "MUL"):
		return mul
	case strings.HasPrefix(opcode, "DIV"):
		return div
	default:
		return add
	}
}

// getComputeCycles computes how long a vector-compute instruction occupies
// its functional unit: pipelineDepth - 1 + ceil(vectorLength / numLanes).
// The vector length replayed is the one the functional core annotated the
// instruction with (the VL in effect when it executed), defaulting to MVL
// when no annotation was recorded, as for the compare-to-mask forms.
func (p *Pipeline) getComputeCycles(ins isa.Instruction) int {
	pdepth := pipelineDepthFor(ins.Opcode, p.cfg.PipelineDepthMul, p.cfg.PipelineDepthDiv, p.cfg.PipelineDepthAdd)
	veclen := isa.MVL
	if ins.Annotation.Present && len(ins.Annotation.Values) > 0 {
		veclen = int(ins.Annotation.Values[0])
	}
	return pdepth - 1 + int(math.Ceil(float64(veclen)/float64(p.cfg.NumLanes)))
}

// dispatchVecCompute moves the head of the vector-compute queue into
// whichever of the three functional units (multiplier, divider, adder)
// its opcode belongs to, if that unit is free.
func (p *Pipeline) dispatchVecCompute() bool {
	if len(p.vecComputeQ) == 0 {
		return false
	}
	ins := p.vecComputeQ[0]
	p.logf("  dispatch vcomp: %s", ins.String())

	switch {
	case strings.HasPrefix(ins.Opcode, "MUL"):
		if !p.mulFree {
			return false
		}
		p.mulIns = &ins
		p.mulFree = false
		p.mulCyclesLeft = p.getComputeCycles(ins)
	case strings.HasPrefix(ins.Opcode, "DIV"):
		if !p.divFree {
			return false
		}
		p.divIns = &ins
		p.divFree = false
		p.divCyclesLeft = p.getComputeCycles(ins)
	default:
		if !p.addFree {
			return false
		}
		p.addIns = &ins
		p.addFree = false
		p.addCyclesLeft = p.getComputeCycles(ins)
	}
	p.vecComputeQ = p.vecComputeQ[1:]
	return true
}

// dispatchScalar moves the one-slot scalar dispatch buffer into the
// scalar functional unit, if it's free. Branches and HALT travel this
// same path — the scalar unit retires whatever it holds unconditionally
// the very next backend cycle.
func (p *Pipeline) dispatchScalar() bool {
	if p.dispatchScalarFree {
		return false
	}
	if !p.scalarFree {
		return false
	}
	p.scalarIns = p.dispatchScalarIns
	p.logf("  dispatch scalar: %s", p.scalarIns.String())
	p.scalarFree = false
	p.dispatchScalarIns = nil
	p.dispatchScalarFree = true
	return true
}
