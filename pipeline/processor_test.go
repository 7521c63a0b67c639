package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/rv32pipe/emu"
	"github.com/archsim/rv32pipe/insts"
	"github.com/archsim/rv32pipe/pipeline"
	"github.com/archsim/rv32pipe/trace"
)

// newProcessor builds a Processor plus an attached Recorder sized for cycles
// ticks over words, and returns both with the register file for inspection.
// The caller runs the Processor.
func newProcessor(words []uint32, cycles int, opts ...pipeline.ProcessorOption) (*pipeline.Processor, *trace.Recorder, *emu.RegFile) {
	decoder := insts.NewDecoder()
	addrs := make([]uint32, len(words))
	program := make(map[uint32]*insts.Instruction, len(words))
	for i, w := range words {
		addr := uint32(i * 4)
		addrs[i] = addr
		program[addr] = decoder.Decode(w)
	}

	rec := trace.NewRecorder(cycles, addrs, program)
	regs := &emu.RegFile{}
	imem := emu.NewInstructionMemory(words)
	dmem := emu.NewDataMemory(1024)

	allOpts := append([]pipeline.ProcessorOption{pipeline.WithRecorder(rec)}, opts...)
	proc := pipeline.NewProcessor(regs, imem, dmem, allOpts...)

	return proc, rec, regs
}

var _ = Describe("Processor", func() {
	// Straight-line independent arithmetic, forwarding on, 8 cycles.
	It("runs straight-line arithmetic with the textbook 5-stage stage grid", func() {
		words := []uint32{
			0x00500113, // addi x2, x0, 5
			0x00A00193, // addi x3, x0, 10
			0x003101B3, // add  x3, x2, x3
		}

		proc, rec, regs := newProcessor(words, 8)
		proc.Run(8)

		lines := splitLines(rec.Dump())
		Expect(lines[0]).To(HaveSuffix("IF;ID;EX;MEM;WB;-;-;-"))
		Expect(lines[1]).To(HaveSuffix("-;IF;ID;EX;MEM;WB;-;-"))
		Expect(lines[2]).To(HaveSuffix("-;-;IF;ID;EX;MEM;WB;-"))

		Expect(regs.ReadReg(2)).To(Equal(uint32(5)))
		Expect(regs.ReadReg(3)).To(Equal(uint32(15)))
	})

	// Load-use hazard, forwarding on, 7 cycles.
	It("stalls a load-use dependency by exactly one cycle when forwarding", func() {
		words := []uint32{
			0x00002103, // lw   x2, 0(x0)
			0x00210193, // addi x3, x2, 2
		}

		proc, rec, _ := newProcessor(words, 7)
		proc.Run(7)

		lines := splitLines(rec.Dump())
		Expect(lines[0]).To(HaveSuffix("IF;ID;EX;MEM;WB;-;-"))
		Expect(lines[1]).To(HaveSuffix("-;IF;ID;ID;EX;MEM;WB"))
	})

	// Same load-use pair, forwarding off, 8 cycles - two stall cycles.
	It("stalls a load-use dependency by two cycles without forwarding", func() {
		words := []uint32{
			0x00002103, // lw   x2, 0(x0)
			0x00210193, // addi x3, x2, 2
		}

		proc, rec, _ := newProcessor(words, 8, pipeline.WithForwarding(false))
		proc.Run(8)

		lines := splitLines(rec.Dump())
		Expect(lines[0]).To(HaveSuffix("IF;ID;EX;MEM;WB;-;-;-"))
		Expect(lines[1]).To(HaveSuffix("-;IF;ID;ID;ID;EX;MEM;WB"))
	})

	// Branch depending on immediately preceding ALU op, forwarding on.
	It("stalls a branch one cycle awaiting the preceding ALU result, then resolves in ID", func() {
		words := []uint32{
			0x00110313, // addi x6, x2, 1
			0x00030463, // beq  x6, x0, +8
		}

		proc, rec, _ := newProcessor(words, 6)
		proc.Run(6)

		lines := splitLines(rec.Dump())
		Expect(lines[1]).To(ContainSubstring("ID;ID"))
	})

	// JAL target correctness, squashed successor.
	It("computes the JAL return address and target, squashing the delay-slot fetch", func() {
		words := []uint32{
			0x008000EF, // jal x1, +8
			0x00000013, // nop (squashed)
			0x00000013, // nop (target)
		}

		proc, rec, regs := newProcessor(words, 6)
		proc.Run(6)

		Expect(regs.ReadReg(1)).To(Equal(uint32(0 + 4)))
		Expect(proc.Stats().Branches).To(Equal(uint64(1)))
		Expect(proc.Stats().Flushes).To(Equal(uint64(1)))

		lines := splitLines(rec.Dump())
		// The squashed instruction at PC+4 only ever gets an IF label.
		Expect(lines[1]).To(ContainSubstring("IF"))
		Expect(lines[1]).NotTo(ContainSubstring("ID"))
	})

	// Unknown encoding as nop.
	It("passes an all-zero word through as a nop without touching architectural state", func() {
		words := []uint32{0x00000000}

		proc, _, regs := newProcessor(words, 5)
		proc.Run(5)

		for i := uint8(1); i < 32; i++ {
			Expect(regs.ReadReg(i)).To(Equal(uint32(0)))
		}
	})

	It("runs for exactly the requested cycle budget even past program drain", func() {
		words := []uint32{0x00500113}

		proc, _, _ := newProcessor(words, 20)
		proc.Run(20)

		Expect(proc.Stats().Cycles).To(Equal(uint64(20)))
	})

	It("never lets x0 retain a write", func() {
		words := []uint32{0x00000013} // addi x0, x0, 0

		proc, _, regs := newProcessor(words, 5)
		proc.Run(5)

		Expect(regs.ReadReg(0)).To(Equal(uint32(0)))
	})
})

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	return lines
}
