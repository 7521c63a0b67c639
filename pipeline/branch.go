package pipeline

import (
	"github.com/archsim/rv32pipe/emu"
	"github.com/archsim/rv32pipe/insts"
)

// branchOutcome is what Decode's early resolution produces for a
// branch/jump candidate: whether control transfers, and to where.
type branchOutcome struct {
	taken  bool
	target uint32
}

// resolveBranch resolves branches and jumps in Decode rather than Execute,
// so a taken branch squashes its delay-slot fetch one cycle earlier than a
// classic textbook design. rs1/rs2 are the
// operand values Decode read from the register file, already forwarded by
// the caller against EX/MEM and MEM/WB so a branch depending on the
// immediately preceding ALU result still resolves correctly.
func resolveBranch(inst *insts.Instruction, pc uint32, rs1, rs2 uint32, imm int32) branchOutcome {
	switch inst.Format {
	case insts.FormatB:
		op := bAluOp(inst.Op)
		result, _, _ := emu.Execute(toEmuAluOp(op), rs1, rs2)
		if result == 0 {
			return branchOutcome{}
		}
		return branchOutcome{taken: true, target: pc + uint32(imm)}

	case insts.FormatJ: // JAL
		return branchOutcome{taken: true, target: pc + uint32(imm)}

	case insts.FormatI:
		if inst.Op == insts.OpJALR {
			target := (rs1 + uint32(imm)) &^ 1
			return branchOutcome{taken: true, target: target}
		}
	}

	return branchOutcome{}
}
