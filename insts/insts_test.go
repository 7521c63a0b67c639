package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/rv32pipe/insts"
)

var _ = Describe("Insts Package", func() {
	It("should have an Instruction type", func() {
		var i insts.Instruction
		Expect(i).To(BeZero())
	})

	It("should have a Decoder type", func() {
		decoder := insts.NewDecoder()
		Expect(decoder).ToNot(BeNil())
	})

	It("treats NoReg as x0 for absent operands", func() {
		Expect(insts.NoReg).To(Equal(uint8(0)))
	})

	Describe("UsesRs1 / UsesRs2", func() {
		It("excludes Rs1 for U and J formats", func() {
			u := insts.Instruction{Format: insts.FormatU}
			j := insts.Instruction{Format: insts.FormatJ}
			Expect(u.UsesRs1()).To(BeFalse())
			Expect(j.UsesRs1()).To(BeFalse())
		})

		It("includes Rs2 only for R, S and B formats", func() {
			r := insts.Instruction{Format: insts.FormatR}
			s := insts.Instruction{Format: insts.FormatS}
			b := insts.Instruction{Format: insts.FormatB}
			i := insts.Instruction{Format: insts.FormatI}

			Expect(r.UsesRs2()).To(BeTrue())
			Expect(s.UsesRs2()).To(BeTrue())
			Expect(b.UsesRs2()).To(BeTrue())
			Expect(i.UsesRs2()).To(BeFalse())
		})
	})

	Describe("IsBranchOrJump", func() {
		It("is true for branches, JAL and JALR", func() {
			Expect((&insts.Instruction{Op: insts.OpBEQ}).IsBranchOrJump()).To(BeTrue())
			Expect((&insts.Instruction{Op: insts.OpJAL}).IsBranchOrJump()).To(BeTrue())
			Expect((&insts.Instruction{Op: insts.OpJALR}).IsBranchOrJump()).To(BeTrue())
		})

		It("is false for ordinary ALU ops", func() {
			Expect((&insts.Instruction{Op: insts.OpADD}).IsBranchOrJump()).To(BeFalse())
		})
	})
})
