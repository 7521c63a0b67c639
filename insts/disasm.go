package insts

import "fmt"

// mnemonics maps each Op to its disassembly mnemonic. BLTU and BGEU are
// kept distinct — RV32I's two unsigned branch mnemonics must not collide.
var mnemonics = map[Op]string{
	OpADD: "add", OpSUB: "sub", OpSLL: "sll", OpSLT: "slt", OpSLTU: "sltu",
	OpXOR: "xor", OpSRL: "srl", OpSRA: "sra", OpOR: "or", OpAND: "and",
	OpADDI: "addi", OpSLTI: "slti", OpSLTIU: "sltiu", OpXORI: "xori",
	OpORI: "ori", OpANDI: "andi", OpSLLI: "slli", OpSRLI: "srli", OpSRAI: "srai",
	OpLB: "lb", OpLH: "lh", OpLW: "lw", OpLBU: "lbu", OpLHU: "lhu",
	OpSB: "sb", OpSH: "sh", OpSW: "sw",
	OpBEQ: "beq", OpBNE: "bne", OpBLT: "blt", OpBGE: "bge", OpBLTU: "bltu", OpBGEU: "bgeu",
	OpLUI: "lui", OpAUIPC: "auipc", OpJAL: "jal", OpJALR: "jalr",
}

// Disassemble produces a best-effort human-readable mnemonic and operand
// list for an instruction. Its exact textual form is not part of any
// contract; only the trace recorder's stage-label column is.
func Disassemble(inst *Instruction) string {
	name, ok := mnemonics[inst.Op]
	if !ok {
		return "invalid"
	}

	switch inst.Format {
	case FormatR:
		return fmt.Sprintf("%s x%d, x%d, x%d", name, inst.Rd, inst.Rs1, inst.Rs2)
	case FormatI:
		if inst.Op == OpJALR {
			return fmt.Sprintf("%s x%d, %d(x%d)", name, inst.Rd, inst.Imm, inst.Rs1)
		}
		if inst.Op == OpLB || inst.Op == OpLH || inst.Op == OpLW || inst.Op == OpLBU || inst.Op == OpLHU {
			return fmt.Sprintf("%s x%d, %d(x%d)", name, inst.Rd, inst.Imm, inst.Rs1)
		}
		return fmt.Sprintf("%s x%d, x%d, %d", name, inst.Rd, inst.Rs1, inst.Imm)
	case FormatS:
		return fmt.Sprintf("%s x%d, %d(x%d)", name, inst.Rs2, inst.Imm, inst.Rs1)
	case FormatB:
		return fmt.Sprintf("%s x%d, x%d, %d", name, inst.Rs1, inst.Rs2, inst.Imm)
	case FormatU:
		return fmt.Sprintf("%s x%d, %d", name, inst.Rd, inst.Imm>>12)
	case FormatJ:
		return fmt.Sprintf("%s x%d, %d", name, inst.Rd, inst.Imm)
	default:
		return "invalid"
	}
}
