package insts

// Low-7-bit opcode values that select the RV32I encoding family.
const (
	opcodeOpImm  uint32 = 0b0010011 // ALU-immediate (I)
	opcodeOp     uint32 = 0b0110011 // register-register ALU (R)
	opcodeLoad   uint32 = 0b0000011 // loads (I)
	opcodeStore  uint32 = 0b0100011 // stores (S)
	opcodeBranch uint32 = 0b1100011 // conditional branches (B)
	opcodeLUI    uint32 = 0b0110111 // LUI (U)
	opcodeAUIPC  uint32 = 0b0010111 // AUIPC (U)
	opcodeJAL    uint32 = 0b1101111 // JAL (J)
	opcodeJALR   uint32 = 0b1100111 // JALR (I)
)

// Decoder decodes raw 32-bit words into Instruction records. It carries no
// state: decoding the same word twice yields bitwise-equal records.
type Decoder struct{}

// NewDecoder creates a new RV32I instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit RV32I instruction word.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{Raw: word, Op: OpINVALID, Format: FormatInvalid}

	opcode := word & 0x7F
	rd := uint8((word >> 7) & 0x1F)
	funct3 := (word >> 12) & 0x7
	rs1 := uint8((word >> 15) & 0x1F)
	rs2 := uint8((word >> 20) & 0x1F)
	funct7 := (word >> 25) & 0x7F

	switch uint32(opcode) {
	case opcodeOp:
		d.decodeR(inst, funct3, funct7, rd, rs1, rs2)
	case opcodeOpImm:
		d.decodeOpImm(inst, funct3, funct7, rd, rs1, word)
	case opcodeLoad:
		d.decodeLoad(inst, funct3, rd, rs1, word)
	case opcodeStore:
		d.decodeStore(inst, funct3, rs1, rs2, word)
	case opcodeBranch:
		d.decodeBranch(inst, funct3, rs1, rs2, word)
	case opcodeLUI:
		inst.Format = FormatU
		inst.Op = OpLUI
		inst.Rd = rd
		inst.Imm = decodeUImm(word)
	case opcodeAUIPC:
		inst.Format = FormatU
		inst.Op = OpAUIPC
		inst.Rd = rd
		inst.Imm = decodeUImm(word)
	case opcodeJAL:
		inst.Format = FormatJ
		inst.Op = OpJAL
		inst.Rd = rd
		inst.Imm = decodeJImm(word)
	case opcodeJALR:
		if funct3 == 0 {
			inst.Format = FormatI
			inst.Op = OpJALR
			inst.Rd = rd
			inst.Rs1 = rs1
			inst.Imm = decodeIImm(word)
		}
	default:
		// Unknown encoding: leave Op = OpINVALID, treated as a nop downstream.
	}

	return inst
}

func (d *Decoder) decodeR(inst *Instruction, funct3, funct7 uint32, rd, rs1, rs2 uint8) {
	inst.Format = FormatR
	inst.Rd = rd
	inst.Rs1 = rs1
	inst.Rs2 = rs2

	switch {
	case funct3 == 0x0 && funct7 == 0x00:
		inst.Op = OpADD
	case funct3 == 0x0 && funct7 == 0x20:
		inst.Op = OpSUB
	case funct3 == 0x1 && funct7 == 0x00:
		inst.Op = OpSLL
	case funct3 == 0x2 && funct7 == 0x00:
		inst.Op = OpSLT
	case funct3 == 0x3 && funct7 == 0x00:
		inst.Op = OpSLTU
	case funct3 == 0x4 && funct7 == 0x00:
		inst.Op = OpXOR
	case funct3 == 0x5 && funct7 == 0x00:
		inst.Op = OpSRL
	case funct3 == 0x5 && funct7 == 0x20:
		inst.Op = OpSRA
	case funct3 == 0x6 && funct7 == 0x00:
		inst.Op = OpOR
	case funct3 == 0x7 && funct7 == 0x00:
		inst.Op = OpAND
	default:
		inst.Format = FormatInvalid
		inst.Op = OpINVALID
	}
}

func (d *Decoder) decodeOpImm(inst *Instruction, funct3, funct7 uint32, rd, rs1 uint8, word uint32) {
	inst.Format = FormatI
	inst.Rd = rd
	inst.Rs1 = rs1
	inst.Imm = decodeIImm(word)

	switch funct3 {
	case 0x0:
		inst.Op = OpADDI
	case 0x2:
		inst.Op = OpSLTI
	case 0x3:
		inst.Op = OpSLTIU
	case 0x4:
		inst.Op = OpXORI
	case 0x6:
		inst.Op = OpORI
	case 0x7:
		inst.Op = OpANDI
	case 0x1:
		if funct7 == 0x00 {
			inst.Op = OpSLLI
			inst.Imm = int32(word>>20) & 0x1F // shamt, not sign-extended
		} else {
			inst.Format = FormatInvalid
			inst.Op = OpINVALID
		}
	case 0x5:
		inst.Imm = int32(word>>20) & 0x1F // shamt, not sign-extended
		switch funct7 {
		case 0x00:
			inst.Op = OpSRLI
		case 0x20:
			inst.Op = OpSRAI
		default:
			inst.Format = FormatInvalid
			inst.Op = OpINVALID
		}
	default:
		inst.Format = FormatInvalid
		inst.Op = OpINVALID
	}
}

func (d *Decoder) decodeLoad(inst *Instruction, funct3 uint32, rd, rs1 uint8, word uint32) {
	inst.Format = FormatI
	inst.Rd = rd
	inst.Rs1 = rs1
	inst.Imm = decodeIImm(word)

	switch funct3 {
	case 0x0:
		inst.Op = OpLB
	case 0x1:
		inst.Op = OpLH
	case 0x2:
		inst.Op = OpLW
	case 0x4:
		inst.Op = OpLBU
	case 0x5:
		inst.Op = OpLHU
	default:
		inst.Format = FormatInvalid
		inst.Op = OpINVALID
	}
}

func (d *Decoder) decodeStore(inst *Instruction, funct3 uint32, rs1, rs2 uint8, word uint32) {
	inst.Format = FormatS
	inst.Rs1 = rs1
	inst.Rs2 = rs2
	inst.Imm = decodeSImm(word)

	switch funct3 {
	case 0x0:
		inst.Op = OpSB
	case 0x1:
		inst.Op = OpSH
	case 0x2:
		inst.Op = OpSW
	default:
		inst.Format = FormatInvalid
		inst.Op = OpINVALID
	}
}

func (d *Decoder) decodeBranch(inst *Instruction, funct3 uint32, rs1, rs2 uint8, word uint32) {
	inst.Format = FormatB
	inst.Rs1 = rs1
	inst.Rs2 = rs2
	inst.Imm = decodeBImm(word)

	switch funct3 {
	case 0x0:
		inst.Op = OpBEQ
	case 0x1:
		inst.Op = OpBNE
	case 0x4:
		inst.Op = OpBLT
	case 0x5:
		inst.Op = OpBGE
	case 0x6:
		inst.Op = OpBLTU
	case 0x7:
		inst.Op = OpBGEU
	default:
		inst.Format = FormatInvalid
		inst.Op = OpINVALID
	}
}

// decodeIImm extracts and sign-extends the I-type immediate: bits[31:20].
func decodeIImm(word uint32) int32 {
	return int32(word) >> 20
}

// decodeSImm extracts and sign-extends the S-type immediate:
// bits[31:25] || bits[11:7].
func decodeSImm(word uint32) int32 {
	hi := (word >> 25) & 0x7F
	lo := (word >> 7) & 0x1F
	imm := (hi << 5) | lo
	return signExtend(imm, 12)
}

// decodeBImm extracts and sign-extends the B-type immediate:
// bit[31] || bit[7] || bits[30:25] || bits[11:8] || 0.
func decodeBImm(word uint32) int32 {
	bit12 := (word >> 31) & 0x1
	bit11 := (word >> 7) & 0x1
	bits10_5 := (word >> 25) & 0x3F
	bits4_1 := (word >> 8) & 0xF

	imm := (bit12 << 12) | (bit11 << 11) | (bits10_5 << 5) | (bits4_1 << 1)
	return signExtend(imm, 13)
}

// decodeUImm extracts the U-type immediate: bits[31:12] || 12 zero bits.
// No sign extension beyond the natural 32-bit value.
func decodeUImm(word uint32) int32 {
	return int32(word & 0xFFFFF000)
}

// decodeJImm extracts and sign-extends the J-type immediate:
// bit[31] || bits[19:12] || bit[20] || bits[30:21] || 0.
func decodeJImm(word uint32) int32 {
	bit20 := (word >> 31) & 0x1
	bits19_12 := (word >> 12) & 0xFF
	bit11 := (word >> 20) & 0x1
	bits10_1 := (word >> 21) & 0x3FF

	imm := (bit20 << 20) | (bits19_12 << 12) | (bit11 << 11) | (bits10_1 << 1)
	return signExtend(imm, 21)
}

// signExtend sign-extends the low bits-wide field of value to a full int32.
func signExtend(value uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(value<<shift) >> shift
}
