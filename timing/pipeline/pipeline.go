// Package pipeline implements the cycle-accurate timing model: a
// single-issue front end (fetch/decode) feeding two vector dispatch queues
// and a scalar dispatch slot, backed by depth-pipelined functional units
// and a banked, multi-lane load-store unit. It replays the dynamic
// instruction trace produced by the functional core rather than executing
// values itself — cycle count is the only thing it computes that the
// functional core doesn't already know.
package pipeline

import (
	"fmt"
	"io"

	"github.com/sarchlab/vmipssim/isa"
	"github.com/sarchlab/vmipssim/timing/config"
	"github.com/sarchlab/vmipssim/timing/scoreboard"
	"github.com/sarchlab/vmipssim/trace"
)

// Pipeline holds every piece of in-flight state for the timing model: the
// fetch/decode slot, the two vector dispatch queues, the scalar dispatch
// slot, the banked load-store lanes, and the four backend functional
// units (multiplier, divider, adder, scalar).
type Pipeline struct {
	tracer *trace.Reader
	cfg    *config.Config
	board  *scoreboard.Board

	count  int // next trace index to fetch
	cycle  uint64
	halted bool

	decodeIns  *isa.Instruction
	decodeFree bool

	vecDataQ    []isa.Instruction
	vecComputeQ []isa.Instruction

	dispatchScalarIns  *isa.Instruction
	dispatchScalarFree bool

	memIns         *isa.Instruction
	memFree        bool
	addrQueues     [][]int
	lanePipes      [][]laneSlot
	bankBusy       []bool
	addrsRemaining int

	mulIns        *isa.Instruction
	mulFree       bool
	mulCyclesLeft int

	divIns        *isa.Instruction
	divFree       bool
	divCyclesLeft int

	addIns        *isa.Instruction
	addFree       bool
	addCyclesLeft int

	scalarIns  *isa.Instruction
	scalarFree bool

	log io.Writer
}

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithCycleLog attaches a writer that receives one line per cycle per
// active stage; the timing CLI's --cyclewise flag points it at CycleLog.txt.
func WithCycleLog(w io.Writer) Option {
	return func(p *Pipeline) {
		p.log = w
	}
}

// New builds a Pipeline over a previously recorded instruction trace,
// shaped by cfg. All functional units, dispatch slots, and lane pipelines
// start free/empty.
func New(tracer *trace.Reader, cfg *config.Config, opts ...Option) *Pipeline {
	lanes := cfg.NumLanes

	p := &Pipeline{
		tracer:             tracer,
		cfg:                cfg,
		board:              scoreboard.New(),
		decodeFree:         true,
		dispatchScalarFree: true,
		memFree:            true,
		mulFree:            true,
		divFree:            true,
		addFree:            true,
		scalarFree:         true,
		addrQueues:         make([][]int, lanes),
		lanePipes:          make([][]laneSlot, lanes),
		bankBusy:           make([]bool, cfg.VDMNumBanks),
	}
	for i := range p.lanePipes {
		p.lanePipes[i] = make([]laneSlot, cfg.VLSPipelineDepth)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stats summarizes a completed (or in-progress) timing run.
type Stats struct {
	Cycles       uint64
	Instructions int
	CPI          float64
}

// Stats returns the current cycle/instruction counts and CPI.
func (p *Pipeline) Stats() Stats {
	s := Stats{Cycles: p.cycle, Instructions: p.count}
	if s.Instructions > 0 {
		s.CPI = float64(s.Cycles) / float64(s.Instructions)
	}
	return s
}

// Cycle returns the number of cycles elapsed so far.
func (p *Pipeline) Cycle() uint64 { return p.cycle }

// Run ticks the pipeline until the trace has been fully fetched, decoded,
// dispatched, and drained through every backend unit, and returns the
// total cycle count — the timing model's one output.
func (p *Pipeline) Run() uint64 {
	for !p.done() {
		p.Tick()
	}
	return p.cycle
}

// done reports the same drain condition the original timing core checks
// at the end of every cycle: halted, and every stage and queue empty.
func (p *Pipeline) done() bool {
	return p.halted &&
		p.mulFree && p.divFree && p.addFree && p.scalarFree && p.memFree &&
		p.dispatchScalarFree &&
		len(p.vecDataQ) == 0 && len(p.vecComputeQ) == 0 &&
		p.decodeFree
}

// Tick advances every stage by one cycle, in reverse pipeline order
// (backend, then dispatch, then decode, then fetch) so that a cycle's
// vacated resources are visible to the stages feeding them within the
// same cycle.
func (p *Pipeline) Tick() {
	p.logf("===== cycle %d", p.cycle)

	p.backendStage()

	// Fixed dispatch priority: vector data, then vector compute, then
	// scalar — at most one instruction dispatches per cycle.
	if !p.dispatchVecData() {
		if !p.dispatchVecCompute() {
			p.dispatchScalar()
		}
	}

	p.decodeStage()
	p.fetchStage()

	p.cycle++
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.log != nil {
		fmt.Fprintf(p.log, format+"\n", args...)
	}
}
