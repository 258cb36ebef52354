package pipeline

// laneSlot is one stage of a lane's address pipeline: empty (valid=false)
// or holding the memory address moving through that stage.
type laneSlot struct {
	valid bool
	addr  int
}

// bank returns the bank an address lands in.
func (p *Pipeline) bank(addr int) int {
	return addr % p.cfg.VDMNumBanks
}

// backendMem advances every lane's address pipeline by one stage. Each
// lane is an array of vlsPipelineDepth slots; an address enters at stage
// 0 (gated on its bank being free) and is shifted one stage deeper each
// cycle it's occupied, stalling at stage 0 whenever its bank is still
// busy from an address ahead of it. A bank is held busy from the cycle an
// address enters stage 1 until bankWait stages later.
func (p *Pipeline) backendMem() {
	if p.addrsRemaining == 0 {
		return
	}

	bankWait := p.cfg.VDMBankWait
	pdepth := p.cfg.VLSPipelineDepth

	for i := range p.lanePipes {
		lane := p.lanePipes[i]
		p.logf("    backend mem queue: %v", lane)

		// Bank access wait is over: free the bank.
		if lane[bankWait].valid {
			p.bankBusy[p.bank(lane[bankWait].addr)] = false
		}

		// The address at the last stage has completed.
		if lane[pdepth-1].valid {
			p.addrsRemaining--
		}

		// Shift every stage but 0 one slot deeper, highest index first.
		for j := 0; j < pdepth-2; j++ {
			lane[pdepth-1-j] = lane[pdepth-2-j]
		}

		// Stage 0 can advance to stage 1 only if its bank is free.
		slot := lane[0]
		if slot.valid && !p.bankBusy[p.bank(slot.addr)] {
			lane[1] = slot
			lane[0] = laneSlot{}
			p.bankBusy[p.bank(slot.addr)] = true
		} else {
			lane[1] = laneSlot{}
		}

		// Pull the next address for this lane into stage 0, if empty.
		if !lane[0].valid && len(p.addrQueues[i]) > 0 {
			lane[0] = laneSlot{valid: true, addr: p.addrQueues[i][0]}
			p.addrQueues[i] = p.addrQueues[i][1:]
		}
	}
}
