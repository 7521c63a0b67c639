package trace_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/rv32pipe/insts"
	"github.com/archsim/rv32pipe/trace"
)

var _ = Describe("Recorder", func() {
	var (
		decoder *insts.Decoder
		addrs   []uint32
		program map[uint32]*insts.Instruction
	)

	BeforeEach(func() {
		decoder = insts.NewDecoder()
		addrs = []uint32{0, 4}
		program = map[uint32]*insts.Instruction{
			0: decoder.Decode(0x00500113), // addi x2, x0, 5
			4: decoder.Decode(0x00A00193), // addi x3, x0, 10
		}
	})

	It("defaults every cell to the no-activity label", func() {
		rec := trace.NewRecorder(4, addrs, program)

		lines := strings.Split(strings.TrimRight(rec.Dump(), "\n"), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(HaveSuffix(";-;-;-;-"))
		Expect(lines[1]).To(HaveSuffix(";-;-;-;-"))
	})

	It("records a label at the given cycle without disturbing others", func() {
		rec := trace.NewRecorder(4, addrs, program)

		rec.Mark(0, 1, trace.StageIF)
		rec.Mark(0, 2, trace.StageID)

		lines := strings.Split(strings.TrimRight(rec.Dump(), "\n"), "\n")
		Expect(lines[0]).To(HaveSuffix(";IF;ID;-;-"))
	})

	It("ignores marks outside the cycle budget", func() {
		rec := trace.NewRecorder(2, addrs, program)

		rec.Mark(0, 0, trace.StageIF)
		rec.Mark(0, 5, trace.StageIF)

		lines := strings.Split(strings.TrimRight(rec.Dump(), "\n"), "\n")
		Expect(lines[0]).To(HaveSuffix(";-;-"))
	})

	It("ignores marks for an unregistered address", func() {
		rec := trace.NewRecorder(2, addrs, program)

		Expect(func() { rec.Mark(999, 1, trace.StageIF) }).NotTo(Panic())
	})

	It("tolerates marks on a nil recorder", func() {
		var rec *trace.Recorder

		Expect(func() { rec.Mark(0, 1, trace.StageIF) }).NotTo(Panic())
	})

	It("allows a stalled instruction to receive the same label twice", func() {
		rec := trace.NewRecorder(4, addrs, program)

		rec.Mark(4, 2, trace.StageID)
		rec.Mark(4, 3, trace.StageID)

		lines := strings.Split(strings.TrimRight(rec.Dump(), "\n"), "\n")
		Expect(lines[1]).To(HaveSuffix(";-;ID;ID;-"))
	})

	It("preserves program order in Dump regardless of map iteration", func() {
		rec := trace.NewRecorder(1, addrs, program)

		lines := strings.Split(strings.TrimRight(rec.Dump(), "\n"), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(HavePrefix("addi x2, x0, 5;"))
		Expect(lines[1]).To(HavePrefix("addi x3, x0, 10;"))
	})

	It("emits a CSV grid with a header row", func() {
		rec := trace.NewRecorder(2, addrs, program)

		csv := rec.DumpCSV()

		Expect(csv).To(HavePrefix("instruction,cycle_1,cycle_2\n"))
	})
})
