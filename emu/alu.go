package emu

// AluOp selects how the ALU combines its two operands. It is derived from
// an instruction's funct3/funct7 (or Op, for the special-cased formats) by
// the control generator, never decoded directly by the ALU itself.
type AluOp uint8

// ALU operations.
const (
	AluADD AluOp = iota
	AluSUB
	AluSLL
	AluSLT
	AluSLTU
	AluXOR
	AluSRL
	AluSRA
	AluOR
	AluAND
	// AluBEQ..AluBGEU compute the branch-comparison boolean into result (1
	// for taken, 0 for not taken); the branch target itself is computed by
	// the caller, not the ALU.
	AluBEQ
	AluBNE
	AluBLT
	AluBGE
	AluBLTU
	AluBGEU
	// AluPC4 produces PC+4, the return-address value JAL/JALR write back.
	AluPC4
	// AluLUI passes operand b (the immediate) through unchanged.
	AluLUI
	// AluAUIPC produces PC+imm.
	AluAUIPC
)

// Execute is the pure ALU function: opcode and two 32-bit operands in,
// result plus zero/negative flags out. Operand 2 is the immediate when the
// control bundle's AluSrc is set, otherwise the second register value.
// Shift amounts are masked to 5 bits; SLTU/BLTU/BGEU use unsigned ordering;
// arithmetic right shift preserves sign. Width is 32 bits throughout.
func Execute(op AluOp, a, b uint32) (result uint32, zero, negative bool) {
	switch op {
	case AluADD:
		result = a + b
	case AluSUB:
		result = a - b
	case AluSLL:
		result = a << (b & 0x1F)
	case AluSLT:
		result = boolToWord(int32(a) < int32(b))
	case AluSLTU:
		result = boolToWord(a < b)
	case AluXOR:
		result = a ^ b
	case AluSRL:
		result = a >> (b & 0x1F)
	case AluSRA:
		result = uint32(int32(a) >> (b & 0x1F))
	case AluOR:
		result = a | b
	case AluAND:
		result = a & b
	case AluBEQ:
		result = boolToWord(a == b)
	case AluBNE:
		result = boolToWord(a != b)
	case AluBLT:
		result = boolToWord(int32(a) < int32(b))
	case AluBGE:
		result = boolToWord(int32(a) >= int32(b))
	case AluBLTU:
		result = boolToWord(a < b)
	case AluBGEU:
		result = boolToWord(a >= b)
	case AluPC4:
		result = a + 4 // a carries PC for this op
	case AluLUI:
		result = b
	case AluAUIPC:
		result = a + b // a carries PC, b the immediate
	}

	zero = result == 0
	negative = int32(result) < 0
	return result, zero, negative
}

func boolToWord(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
