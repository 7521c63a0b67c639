// Package pipeline implements the five-stage RV32I pipeline: the four
// inter-stage latches, the per-stage datapath, the forwarding and hazard
// units, and the Processor that sequences a cycle WB->MEM->EX->ID->IF.
package pipeline

import "github.com/archsim/rv32pipe/insts"

// ControlSignals is the control bundle the control generator derives from
// an instruction record. Only the signals a given instruction actually
// needs are ever set; AluOp further selects how the ALU interprets the
// opcode.
type ControlSignals struct {
	RegWrite bool
	MemRead  bool
	MemWrite bool
	MemToReg bool
	AluSrc   bool
	Branch   bool
	Jump     bool
	AluOp    aluOpTag
}

// aluOpTag is control.go's opcode-to-ALU-operation mapping, translated to
// emu.AluOp by the execute stage.
type aluOpTag uint8

const (
	aluTagADD aluOpTag = iota
	aluTagSUB
	aluTagSLL
	aluTagSLT
	aluTagSLTU
	aluTagXOR
	aluTagSRL
	aluTagSRA
	aluTagOR
	aluTagAND
	aluTagBEQ
	aluTagBNE
	aluTagBLT
	aluTagBGE
	aluTagBLTU
	aluTagBGEU
	aluTagPC4
	aluTagLUI
	aluTagAUIPC
	aluTagNone
)

// GenerateControl is a pure function of the instruction record: instruction
// in, control bundle out. An INVALID instruction produces an all-false
// bundle (a nop).
func GenerateControl(inst *insts.Instruction) ControlSignals {
	switch inst.Format {
	case insts.FormatR:
		return ControlSignals{RegWrite: true, AluOp: rAluOp(inst.Op)}

	case insts.FormatI:
		switch inst.Op {
		case insts.OpLB, insts.OpLH, insts.OpLW, insts.OpLBU, insts.OpLHU:
			return ControlSignals{RegWrite: true, AluSrc: true, MemRead: true, MemToReg: true, AluOp: aluTagADD}
		case insts.OpJALR:
			return ControlSignals{RegWrite: true, Jump: true, AluOp: aluTagPC4}
		case insts.OpINVALID:
			return ControlSignals{}
		default:
			return ControlSignals{RegWrite: true, AluSrc: true, AluOp: iAluOp(inst.Op)}
		}

	case insts.FormatS:
		return ControlSignals{AluSrc: true, MemWrite: true, AluOp: aluTagADD}

	case insts.FormatB:
		return ControlSignals{Branch: true, AluOp: bAluOp(inst.Op)}

	case insts.FormatU:
		if inst.Op == insts.OpLUI {
			return ControlSignals{RegWrite: true, AluSrc: true, AluOp: aluTagLUI}
		}
		return ControlSignals{RegWrite: true, AluSrc: true, AluOp: aluTagAUIPC} // AUIPC

	case insts.FormatJ:
		return ControlSignals{RegWrite: true, Jump: true, AluOp: aluTagPC4} // JAL

	default:
		return ControlSignals{}
	}
}

func rAluOp(op insts.Op) aluOpTag {
	switch op {
	case insts.OpADD:
		return aluTagADD
	case insts.OpSUB:
		return aluTagSUB
	case insts.OpSLL:
		return aluTagSLL
	case insts.OpSLT:
		return aluTagSLT
	case insts.OpSLTU:
		return aluTagSLTU
	case insts.OpXOR:
		return aluTagXOR
	case insts.OpSRL:
		return aluTagSRL
	case insts.OpSRA:
		return aluTagSRA
	case insts.OpOR:
		return aluTagOR
	case insts.OpAND:
		return aluTagAND
	default:
		return aluTagNone
	}
}

func iAluOp(op insts.Op) aluOpTag {
	switch op {
	case insts.OpADDI:
		return aluTagADD
	case insts.OpSLTI:
		return aluTagSLT
	case insts.OpSLTIU:
		return aluTagSLTU
	case insts.OpXORI:
		return aluTagXOR
	case insts.OpORI:
		return aluTagOR
	case insts.OpANDI:
		return aluTagAND
	case insts.OpSLLI:
		return aluTagSLL
	case insts.OpSRLI:
		return aluTagSRL
	case insts.OpSRAI:
		return aluTagSRA
	default:
		return aluTagNone
	}
}

func bAluOp(op insts.Op) aluOpTag {
	switch op {
	case insts.OpBEQ:
		return aluTagBEQ
	case insts.OpBNE:
		return aluTagBNE
	case insts.OpBLT:
		return aluTagBLT
	case insts.OpBGE:
		return aluTagBGE
	case insts.OpBLTU:
		return aluTagBLTU
	case insts.OpBGEU:
		return aluTagBGEU
	default:
		return aluTagNone
	}
}
