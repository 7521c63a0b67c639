package pipeline

import "github.com/archsim/rv32pipe/insts"

// HazardUnit decides whether Fetch/Decode must stall for the instruction
// currently in IF/ID, given the forwarding mode and the state of the three
// downstream latches.
type HazardUnit struct {
	forwardingEnabled bool
}

// NewHazardUnit creates a hazard detection unit for the given forwarding
// mode.
func NewHazardUnit(forwardingEnabled bool) *HazardUnit {
	return &HazardUnit{forwardingEnabled: forwardingEnabled}
}

// ShouldStall reports whether Fetch/Decode must stall for candidate. With
// forwarding enabled, only a load-use hazard or an early-branch hazard
// against a load two cycles out or a writer one cycle out force a stall;
// with forwarding disabled, any writer still in ID/EX or EX/MEM forces one.
// A writer sitting in MEM/WB never needs a stall here: Writeback always
// runs before Decode within the same Tick, so its register write has
// already landed by the time this check runs.
func (h *HazardUnit) ShouldStall(candidate *insts.Instruction, idex *IDEX, exmem *EXMEM, memwb *MEMWB) bool {
	usesRs1 := candidate.UsesRs1()
	usesRs2 := candidate.UsesRs2()
	rs1, rs2 := candidate.Rs1, candidate.Rs2

	if h.forwardingEnabled {
		if isLoadUseHazard(idex, usesRs1, rs1, usesRs2, rs2) {
			return true
		}

		if candidate.IsBranchOrJump() {
			if isLoadUseHazard(memwb, usesRs1, rs1, usesRs2, rs2) {
				return true
			}
			if isWriterHazard(idex, usesRs1, rs1, usesRs2, rs2) {
				return true
			}
		}

		return false
	}

	return isWriterHazard(idex, usesRs1, rs1, usesRs2, rs2) ||
		isWriterHazard(exmem, usesRs1, rs1, usesRs2, rs2)
}

// idexLike lets isLoadUseHazard/isWriterHazard work across the three latch
// types via their shared Valid/Control/Rd shape.
type idexLike interface {
	validRd() (valid bool, regWrite, memRead bool, rd uint8)
}

func (r *IDEX) validRd() (bool, bool, bool, uint8) {
	return r.Valid, r.Control.RegWrite, r.Control.MemRead, r.Inst.Rd
}

func (r *EXMEM) validRd() (bool, bool, bool, uint8) {
	return r.Valid, r.Control.RegWrite, r.Control.MemRead, r.Inst.Rd
}

func (r *MEMWB) validRd() (bool, bool, bool, uint8) {
	return r.Valid, r.Control.RegWrite, r.Control.MemRead, r.Inst.Rd
}

func isLoadUseHazard(latch idexLike, usesRs1 bool, rs1 uint8, usesRs2 bool, rs2 uint8) bool {
	valid, _, memRead, rd := latch.validRd()
	if !valid || !memRead || rd == 0 {
		return false
	}
	return (usesRs1 && rs1 == rd) || (usesRs2 && rs2 == rd)
}

func isWriterHazard(latch idexLike, usesRs1 bool, rs1 uint8, usesRs2 bool, rs2 uint8) bool {
	valid, regWrite, _, rd := latch.validRd()
	if !valid || !regWrite || rd == 0 {
		return false
	}
	return (usesRs1 && rs1 == rd) || (usesRs2 && rs2 == rd)
}
