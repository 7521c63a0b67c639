// Package trace records, per static instruction, which pipeline stage
// touched it on each simulated cycle, and serializes the resulting grid.
package trace

import (
	"fmt"
	"strings"

	"github.com/archsim/rv32pipe/insts"
)

// Stage labels written into the trace grid.
const (
	StageIF   = "IF"
	StageID   = "ID"
	StageEX   = "EX"
	StageMEM  = "MEM"
	StageWB   = "WB"
	stageNone = "-"
)

// row is one static instruction's trace: its disassembly and a dense,
// cycle-indexed vector of stage labels.
type row struct {
	disasm string
	labels []string
}

// Recorder maintains one row per static instruction address, keyed by PC,
// and the stage label each carries at every simulated cycle. The reference
// design locates a row by a linear scan over instruction addresses each
// time a stage writes a label; a PC-keyed map gives the same observable
// trace without the scan.
type Recorder struct {
	cycles int
	order  []uint32
	rows   map[uint32]*row
}

// NewRecorder pre-registers one row per instruction in program, in program
// order, for a run of the given number of cycles. program maps each
// instruction's address to its decoded record, consecutive four bytes
// apart starting at address 0, matching the loader's layout.
func NewRecorder(cycles int, addrs []uint32, program map[uint32]*insts.Instruction) *Recorder {
	r := &Recorder{
		cycles: cycles,
		order:  append([]uint32(nil), addrs...),
		rows:   make(map[uint32]*row, len(addrs)),
	}

	for _, addr := range addrs {
		labels := make([]string, cycles)
		for i := range labels {
			labels[i] = stageNone
		}
		r.rows[addr] = &row{
			disasm: insts.Disassemble(program[addr]),
			labels: labels,
		}
	}

	return r
}

// Mark records that the instruction at pc occupied stage at the given
// 1-indexed cycle. Marks outside the configured cycle budget or for an
// unregistered address are no-ops, so a nil Recorder-free caller never
// needs to special-case out-of-range cycles or trailing bubbles.
func (r *Recorder) Mark(pc uint32, cycle int, stage string) {
	if r == nil || cycle < 1 || cycle > r.cycles {
		return
	}
	row, ok := r.rows[pc]
	if !ok {
		return
	}
	row.labels[cycle-1] = stage
}

// Dump serializes the trace grid as one line per static instruction in
// program order: "<disassembly>;<label_1>;...;<label_N>".
func (r *Recorder) Dump() string {
	var b strings.Builder
	for _, addr := range r.order {
		row := r.rows[addr]
		b.WriteString(row.disasm)
		for _, label := range row.labels {
			b.WriteString(";")
			b.WriteString(label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DumpCSV serializes the same grid with a header row and cycle-numbered
// columns. Production of this format is an implementation detail; the
// plain-text Dump output is the contractual one.
func (r *Recorder) DumpCSV() string {
	var b strings.Builder
	b.WriteString("instruction")
	for c := 1; c <= r.cycles; c++ {
		fmt.Fprintf(&b, ",cycle_%d", c)
	}
	b.WriteString("\n")

	for _, addr := range r.order {
		row := r.rows[addr]
		b.WriteString(row.disasm)
		for _, label := range row.labels {
			b.WriteString(",")
			b.WriteString(label)
		}
		b.WriteString("\n")
	}
	return b.String()
}
