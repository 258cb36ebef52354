package pipeline

// fetchStage reads the next instruction off the trace into the decode
// slot, if decode is free and the pipeline hasn't yet fetched HALT.
func (p *Pipeline) fetchStage() {
	if !p.decodeFree || p.halted {
		return
	}

	ins := p.tracer.Read(p.count)
	p.decodeIns = &ins
	p.decodeFree = false
	p.count++
	p.logf("  fetch: %s", ins.String())

	if ins.Opcode == "HALT" {
		p.halted = true
	}
}
