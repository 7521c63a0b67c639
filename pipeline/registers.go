package pipeline

import "github.com/archsim/rv32pipe/insts"

// IFID holds state between Fetch and Decode. A latch with Valid == false is
// a bubble: downstream stages produce no architectural effect from it.
type IFID struct {
	Valid bool
	PC    uint32
	Word  uint32
}

// Clear turns the latch into a bubble.
func (r *IFID) Clear() { *r = IFID{} }

// IDEX holds state between Decode and Execute.
type IDEX struct {
	Valid     bool
	PC        uint32
	Inst      insts.Instruction
	ReadData1 uint32
	ReadData2 uint32
	Imm       int32
	Control   ControlSignals
}

// Clear turns the latch into a bubble.
func (r *IDEX) Clear() { *r = IDEX{} }

// EXMEM holds state between Execute and Memory.
type EXMEM struct {
	Valid     bool
	PC        uint32
	Inst      insts.Instruction
	ALUResult uint32
	Zero      bool
	Negative  bool
	ReadData2 uint32 // forwarded store-data operand
	Control   ControlSignals
}

// Clear turns the latch into a bubble.
func (r *EXMEM) Clear() { *r = EXMEM{} }

// MEMWB holds state between Memory and Writeback.
type MEMWB struct {
	Valid     bool
	PC        uint32
	Inst      insts.Instruction
	ALUResult uint32
	ReadData  uint32
	Control   ControlSignals
}

// Clear turns the latch into a bubble.
func (r *MEMWB) Clear() { *r = MEMWB{} }
