package pipeline

import (
	"github.com/archsim/rv32pipe/emu"
	"github.com/archsim/rv32pipe/insts"
	"github.com/archsim/rv32pipe/trace"
)

// Processor aggregates the five stages, the four latches, the hazard and
// forwarding units, and the architectural state (register file and
// memories) into one cycle-stepped RV32I pipeline.
type Processor struct {
	fetchStage     *FetchStage
	decodeStage    *DecodeStage
	executeStage   *ExecuteStage
	memoryStage    *MemoryStage
	writebackStage *WritebackStage

	ifid  IFID
	idex  IDEX
	exmem EXMEM
	memwb MEMWB

	nextIfid  IFID
	nextIdex  IDEX
	nextExmem EXMEM
	nextMemwb MEMWB

	hazardUnit     *HazardUnit
	forwardingUnit *ForwardingUnit

	regFile *emu.RegFile
	imem    *emu.InstructionMemory
	dmem    *emu.DataMemory
	pc      uint32

	recorder *trace.Recorder

	cycleCount       uint64
	instructionCount uint64
	stallCount       uint64
	branchCount      uint64
	flushCount       uint64
}

// ProcessorOption is a functional option for configuring a Processor.
type ProcessorOption func(*Processor)

// WithForwarding selects whether the hazard detection unit may rely on
// operand forwarding. Disabling it turns every in-flight writer of a used
// source into a stall.
func WithForwarding(enabled bool) ProcessorOption {
	return func(p *Processor) {
		p.hazardUnit = NewHazardUnit(enabled)
	}
}

// WithRecorder attaches a trace recorder. A Processor built without one
// simply runs without producing a trace.
func WithRecorder(r *trace.Recorder) ProcessorOption {
	return func(p *Processor) {
		p.recorder = r
	}
}

// NewProcessor creates a Processor with forwarding enabled by default; pass
// WithForwarding(false) to model the non-forwarding configuration.
func NewProcessor(regFile *emu.RegFile, imem *emu.InstructionMemory, dmem *emu.DataMemory, opts ...ProcessorOption) *Processor {
	p := &Processor{
		fetchStage:     NewFetchStage(imem),
		decodeStage:    NewDecodeStage(insts.NewDecoder(), regFile),
		executeStage:   NewExecuteStage(),
		memoryStage:    NewMemoryStage(dmem),
		writebackStage: NewWritebackStage(regFile),
		hazardUnit:     NewHazardUnit(true),
		forwardingUnit: NewForwardingUnit(),
		regFile:        regFile,
		imem:           imem,
		dmem:           dmem,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// PC returns the current program counter.
func (p *Processor) PC() uint32 { return p.pc }

// Stats summarizes a simulation run.
type Stats struct {
	Cycles       uint64
	Instructions uint64
	Stalls       uint64
	Branches     uint64
	Flushes      uint64
}

// Stats returns the processor's cumulative run statistics.
func (p *Processor) Stats() Stats {
	return Stats{
		Cycles:       p.cycleCount,
		Instructions: p.instructionCount,
		Stalls:       p.stallCount,
		Branches:     p.branchCount,
		Flushes:      p.flushCount,
	}
}

// Run advances the pipeline by exactly n cycles. There is no halt
// instruction and no self-termination; trailing cycles after the program
// has drained simply produce bubbles.
func (p *Processor) Run(n int) {
	for i := 0; i < n; i++ {
		p.Tick()
	}
}

// Tick advances every stage by one cycle, in reverse pipeline order so
// each stage consumes the previous cycle's latch state.
func (p *Processor) Tick() {
	p.cycleCount++
	cycle := int(p.cycleCount)

	p.doWriteback(cycle)
	p.doMemory(cycle)
	p.doExecute(cycle)
	stalled, outcome := p.doDecode(cycle)
	p.doFetch(cycle, stalled)

	if stalled {
		p.stallCount++
		p.nextIdex.Clear()
		p.nextIfid = p.ifid
	}

	if outcome.taken {
		p.branchCount++
		p.flushCount++
		p.nextIfid.Clear()
		p.pc = outcome.target
	} else if !stalled {
		p.pc += 4
	}

	p.ifid = p.nextIfid
	p.idex = p.nextIdex
	p.exmem = p.nextExmem
	p.memwb = p.nextMemwb
}

func (p *Processor) doFetch(cycle int, stalled bool) {
	if stalled {
		// PC is held and IF/ID's prior content is retained by Tick; IF
		// performs no new fetch and earns no label this cycle.
		return
	}

	word := p.fetchStage.Fetch(p.pc)
	p.nextIfid.Valid = true
	p.nextIfid.PC = p.pc
	p.nextIfid.Word = word

	p.recorder.Mark(p.pc, cycle, trace.StageIF)
}

func (p *Processor) doDecode(cycle int) (stalled bool, outcome branchOutcome) {
	if !p.ifid.Valid {
		p.nextIdex.Clear()
		return false, branchOutcome{}
	}

	p.recorder.Mark(p.ifid.PC, cycle, trace.StageID)

	result := p.decodeStage.Decode(p.ifid.Word)
	candidate := result.Inst

	if p.hazardUnit.ShouldStall(&candidate, &p.idex, &p.exmem, &p.memwb) {
		return true, branchOutcome{}
	}

	fwdRs1, fwdRs2 := p.forwardingUnit.Resolve(candidate.Rs1, candidate.Rs2, &p.exmem, &p.memwb)
	rs1Val := p.forwardingUnit.Value(fwdRs1, result.ReadData1, &p.exmem, &p.memwb)
	rs2Val := p.forwardingUnit.Value(fwdRs2, result.ReadData2, &p.exmem, &p.memwb)

	outcome = resolveBranch(&candidate, p.ifid.PC, rs1Val, rs2Val, candidate.Imm)

	control := result.Control
	if outcome.taken {
		control.Branch = false
		control.Jump = false
	}

	p.nextIdex.Valid = true
	p.nextIdex.PC = p.ifid.PC
	p.nextIdex.Inst = candidate
	p.nextIdex.ReadData1 = result.ReadData1
	p.nextIdex.ReadData2 = result.ReadData2
	p.nextIdex.Imm = candidate.Imm
	p.nextIdex.Control = control

	return false, outcome
}

func (p *Processor) doExecute(cycle int) {
	if !p.idex.Valid {
		p.nextExmem.Clear()
		return
	}

	p.recorder.Mark(p.idex.PC, cycle, trace.StageEX)

	fwdRs1, fwdRs2 := p.forwardingUnit.Resolve(p.idex.Inst.Rs1, p.idex.Inst.Rs2, &p.exmem, &p.memwb)
	rs1Val := p.forwardingUnit.Value(fwdRs1, p.idex.ReadData1, &p.exmem, &p.memwb)
	rs2Val := p.forwardingUnit.Value(fwdRs2, p.idex.ReadData2, &p.exmem, &p.memwb)

	result := p.executeStage.Execute(&p.idex, rs1Val, rs2Val)

	p.nextExmem.Valid = true
	p.nextExmem.PC = p.idex.PC
	p.nextExmem.Inst = p.idex.Inst
	p.nextExmem.ALUResult = result.ALUResult
	p.nextExmem.Zero = result.Zero
	p.nextExmem.Negative = result.Negative
	p.nextExmem.ReadData2 = rs2Val
	p.nextExmem.Control = p.idex.Control
}

func (p *Processor) doMemory(cycle int) {
	if !p.exmem.Valid {
		p.nextMemwb.Clear()
		return
	}

	p.recorder.Mark(p.exmem.PC, cycle, trace.StageMEM)

	readData := p.memoryStage.Access(&p.exmem)

	p.nextMemwb.Valid = true
	p.nextMemwb.PC = p.exmem.PC
	p.nextMemwb.Inst = p.exmem.Inst
	p.nextMemwb.ALUResult = p.exmem.ALUResult
	p.nextMemwb.ReadData = readData
	p.nextMemwb.Control = p.exmem.Control
}

func (p *Processor) doWriteback(cycle int) {
	if !p.memwb.Valid {
		return
	}

	p.recorder.Mark(p.memwb.PC, cycle, trace.StageWB)

	p.writebackStage.Writeback(&p.memwb)
	p.instructionCount++
}
