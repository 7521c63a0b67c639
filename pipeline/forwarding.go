package pipeline

// ForwardSource identifies where an EX-stage operand comes from.
type ForwardSource uint8

// Forwarding sources, in priority order (EX/MEM beats MEM/WB beats the
// register file value already latched into ID/EX).
const (
	ForwardNone ForwardSource = iota
	ForwardFromEXMEM
	ForwardFromMEMWB
)

// ForwardingUnit selects, for each ID/EX source operand, whether to use the
// register-file value already latched or a value forwarded from a later
// in-flight instruction.
type ForwardingUnit struct{}

// NewForwardingUnit creates a new forwarding unit.
func NewForwardingUnit() *ForwardingUnit {
	return &ForwardingUnit{}
}

// Resolve decides the forwarding source for rs1 and rs2 of the instruction
// in ID/EX, given the current EX/MEM and MEM/WB latches. First match wins:
// EX/MEM, then MEM/WB, then the register file.
func (f *ForwardingUnit) Resolve(rs1, rs2 uint8, exmem *EXMEM, memwb *MEMWB) (fwdRs1, fwdRs2 ForwardSource) {
	fwdRs1 = f.resolveOne(rs1, exmem, memwb)
	fwdRs2 = f.resolveOne(rs2, exmem, memwb)
	return fwdRs1, fwdRs2
}

func (f *ForwardingUnit) resolveOne(rs uint8, exmem *EXMEM, memwb *MEMWB) ForwardSource {
	if rs == 0 {
		return ForwardNone
	}
	if exmem.Valid && exmem.Control.RegWrite && exmem.Inst.Rd != 0 && exmem.Inst.Rd == rs {
		return ForwardFromEXMEM
	}
	if memwb.Valid && memwb.Control.RegWrite && memwb.Inst.Rd != 0 && memwb.Inst.Rd == rs {
		return ForwardFromMEMWB
	}
	return ForwardNone
}

// Value returns the operand value to use for a given forwarding source.
// A MEM/WB forward yields ReadData when MemToReg is set, else ALUResult.
func (f *ForwardingUnit) Value(source ForwardSource, original uint32, exmem *EXMEM, memwb *MEMWB) uint32 {
	switch source {
	case ForwardFromEXMEM:
		return exmem.ALUResult
	case ForwardFromMEMWB:
		if memwb.Control.MemToReg {
			return memwb.ReadData
		}
		return memwb.ALUResult
	default:
		return original
	}
}
