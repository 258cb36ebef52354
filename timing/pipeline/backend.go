package pipeline

// backendStage advances the load-store unit and the three depth-pipelined
// compute units (multiplier, divider, adder) by one cycle, and retires
// whichever of them just finished — unmarking the scoreboard and freeing
// the unit for next cycle's dispatch. The scalar unit has no latency: an
// instruction dispatched into it retires the very next backend cycle.
func (p *Pipeline) backendStage() {
	if !p.memFree {
		p.logf("  backend mem: %s", p.memIns.String())
		p.backendMem()
		if p.addrsRemaining == 0 {
			p.board.Unmark(*p.memIns)
			p.memIns = nil
			p.memFree = true
		}
	}

	if !p.mulFree {
		p.logf("  backend mul: %s cycles %d", p.mulIns.String(), p.mulCyclesLeft)
		if p.mulCyclesLeft == 1 {
			p.board.Unmark(*p.mulIns)
			p.mulIns = nil
			p.mulFree = true
		} else {
			p.mulCyclesLeft--
		}
	}

	if !p.divFree {
		p.logf("  backend div: %s cycles %d", p.divIns.String(), p.divCyclesLeft)
		if p.divCyclesLeft == 1 {
			p.board.Unmark(*p.divIns)
			p.divIns = nil
			p.divFree = true
		} else {
			p.divCyclesLeft--
		}
	}

	if !p.addFree {
		p.logf("  backend add: %s cycles %d", p.addIns.String(), p.addCyclesLeft)
		if p.addCyclesLeft == 1 {
			p.board.Unmark(*p.addIns)
			p.addIns = nil
			p.addFree = true
		} else {
			p.addCyclesLeft--
		}
	}

	if !p.scalarFree {
		p.logf("  backend scalar: %s", p.scalarIns.String())
		p.board.Unmark(*p.scalarIns)
		p.scalarIns = nil
		p.scalarFree = true
	}
}
