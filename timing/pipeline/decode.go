package pipeline

import "github.com/sarchlab/vmipssim/isa"

// decodeStage routes the instruction sitting in the decode slot to one of
// the three dispatch paths — vector data, vector compute, or scalar —
// once its register/VMR/VLR operands are free in the scoreboard and the
// destination queue/slot has room. Branches skip the scoreboard check
// entirely: their operands are already resolved values by the time they
// reach the trace, not live register reads.
func (p *Pipeline) decodeStage() {
	if p.decodeFree {
		return
	}

	ins := *p.decodeIns
	p.logf("  decode: %s", ins.String())

	if !isa.BranchOps[ins.Opcode] && !p.board.Free(ins) {
		return
	}

	switch {
	case isa.VectorDataOps[ins.Opcode]:
		if len(p.vecDataQ) < p.cfg.DataQueueDepth {
			p.vecDataQ = append(p.vecDataQ, ins)
			p.retireDecode(ins)
		}
	case isa.VectorComputeOps[ins.Opcode]:
		if len(p.vecComputeQ) < p.cfg.ComputeQueueDepth {
			p.vecComputeQ = append(p.vecComputeQ, ins)
			p.retireDecode(ins)
		}
	default:
		if p.dispatchScalarFree {
			p.dispatchScalarIns = &ins
			p.dispatchScalarFree = false
			p.retireDecode(ins)
		}
	}
}

// retireDecode frees the decode slot and marks ins's resources busy. It is
// called only once an instruction has actually been accepted by its
// destination queue/slot.
func (p *Pipeline) retireDecode(ins isa.Instruction) {
	p.decodeIns = nil
	p.decodeFree = true
	p.board.Mark(ins)
}
