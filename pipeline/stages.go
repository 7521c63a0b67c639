package pipeline

import (
	"github.com/archsim/rv32pipe/emu"
	"github.com/archsim/rv32pipe/insts"
)

// FetchStage reads one instruction word from instruction memory.
type FetchStage struct {
	imem *emu.InstructionMemory
}

// NewFetchStage creates a new fetch stage over the given instruction
// memory.
func NewFetchStage(imem *emu.InstructionMemory) *FetchStage {
	return &FetchStage{imem: imem}
}

// Fetch returns the word at the given PC.
func (s *FetchStage) Fetch(pc uint32) uint32 {
	return s.imem.ReadWord(pc)
}

// DecodeStage decodes the fetched word, reads the register file, and
// derives the control bundle. Branch/jump resolution is handled separately
// by the Processor, since it needs the forwarding unit and the downstream
// latches, not just the decode stage's own state.
type DecodeStage struct {
	decoder *insts.Decoder
	regFile *emu.RegFile
}

// NewDecodeStage creates a new decode stage.
func NewDecodeStage(decoder *insts.Decoder, regFile *emu.RegFile) *DecodeStage {
	return &DecodeStage{decoder: decoder, regFile: regFile}
}

// DecodeResult is everything Decode produces for one instruction word.
type DecodeResult struct {
	Inst      insts.Instruction
	ReadData1 uint32
	ReadData2 uint32
	Control   ControlSignals
}

// Decode decodes word and reads its source operands from the register
// file. The register file is read exactly once here; Execute re-applies
// forwarding on top of these raw values.
func (s *DecodeStage) Decode(word uint32) DecodeResult {
	inst := s.decoder.Decode(word)
	return DecodeResult{
		Inst:      *inst,
		ReadData1: s.regFile.ReadReg(inst.Rs1),
		ReadData2: s.regFile.ReadReg(inst.Rs2),
		Control:   GenerateControl(inst),
	}
}

// ExecuteStage runs the ALU, using forwarded operands supplied by the
// Processor's ForwardingUnit.
type ExecuteStage struct{}

// NewExecuteStage creates a new execute stage.
func NewExecuteStage() *ExecuteStage {
	return &ExecuteStage{}
}

// ExecuteResult holds what Execute produces for EX/MEM.
type ExecuteResult struct {
	ALUResult uint32
	Zero      bool
	Negative  bool
}

// Execute computes the ALU result for the instruction in ID/EX. Operand 1
// is the PC for AluPC4/AluAUIPC (return-address / PC-relative opcodes),
// otherwise the forwarded rs1 value; operand 2 is the immediate when
// AluSrc is set, otherwise the forwarded rs2 value.
func (s *ExecuteStage) Execute(idex *IDEX, fwdRs1, fwdRs2 uint32) ExecuteResult {
	op := toEmuAluOp(idex.Control.AluOp)

	op1 := fwdRs1
	if idex.Control.AluOp == aluTagPC4 || idex.Control.AluOp == aluTagAUIPC {
		op1 = idex.PC
	}

	op2 := fwdRs2
	if idex.Control.AluSrc {
		op2 = uint32(idex.Imm)
	}

	result, zero, negative := emu.Execute(op, op1, op2)
	return ExecuteResult{ALUResult: result, Zero: zero, Negative: negative}
}

// MemoryStage performs load/store memory access.
type MemoryStage struct {
	dmem *emu.DataMemory
}

// NewMemoryStage creates a new memory stage over the given data memory.
func NewMemoryStage(dmem *emu.DataMemory) *MemoryStage {
	return &MemoryStage{dmem: dmem}
}

// Access performs the load or store for the instruction in EX/MEM. Loads
// of byte/half are sign-extended (LB, LH) or zero-extended (LBU, LHU);
// word loads are verbatim.
func (s *MemoryStage) Access(exmem *EXMEM) (readData uint32) {
	if !exmem.Valid {
		return 0
	}

	addr := exmem.ALUResult

	if exmem.Control.MemRead {
		switch exmem.Inst.Op {
		case insts.OpLB:
			return uint32(int32(int8(s.dmem.ReadByte(addr))))
		case insts.OpLH:
			return uint32(int32(int16(s.dmem.ReadHalf(addr))))
		case insts.OpLBU:
			return uint32(s.dmem.ReadByte(addr))
		case insts.OpLHU:
			return uint32(s.dmem.ReadHalf(addr))
		default: // OpLW
			return s.dmem.ReadWord(addr)
		}
	}

	if exmem.Control.MemWrite {
		switch exmem.Inst.Op {
		case insts.OpSB:
			s.dmem.WriteByte(addr, uint8(exmem.ReadData2))
		case insts.OpSH:
			s.dmem.WriteHalf(addr, uint16(exmem.ReadData2))
		default: // OpSW
			s.dmem.WriteWord(addr, exmem.ReadData2)
		}
	}

	return 0
}

// WritebackStage commits the final result to the register file.
type WritebackStage struct {
	regFile *emu.RegFile
}

// NewWritebackStage creates a new writeback stage.
func NewWritebackStage(regFile *emu.RegFile) *WritebackStage {
	return &WritebackStage{regFile: regFile}
}

// Writeback writes memwb's result to its destination register. rd == 0
// never causes a write regardless of RegWrite.
func (s *WritebackStage) Writeback(memwb *MEMWB) {
	if !memwb.Valid || !memwb.Control.RegWrite || memwb.Inst.Rd == 0 {
		return
	}

	value := memwb.ALUResult
	if memwb.Control.MemToReg {
		value = memwb.ReadData
	}

	s.regFile.WriteReg(memwb.Inst.Rd, value)
}

func toEmuAluOp(tag aluOpTag) emu.AluOp {
	switch tag {
	case aluTagADD:
		return emu.AluADD
	case aluTagSUB:
		return emu.AluSUB
	case aluTagSLL:
		return emu.AluSLL
	case aluTagSLT:
		return emu.AluSLT
	case aluTagSLTU:
		return emu.AluSLTU
	case aluTagXOR:
		return emu.AluXOR
	case aluTagSRL:
		return emu.AluSRL
	case aluTagSRA:
		return emu.AluSRA
	case aluTagOR:
		return emu.AluOR
	case aluTagAND:
		return emu.AluAND
	case aluTagBEQ:
		return emu.AluBEQ
	case aluTagBNE:
		return emu.AluBNE
	case aluTagBLT:
		return emu.AluBLT
	case aluTagBGE:
		return emu.AluBGE
	case aluTagBLTU:
		return emu.AluBLTU
	case aluTagBGEU:
		return emu.AluBGEU
	case aluTagPC4:
		return emu.AluPC4
	case aluTagLUI:
		return emu.AluLUI
	case aluTagAUIPC:
		return emu.AluAUIPC
	default:
		return emu.AluADD
	}
}
