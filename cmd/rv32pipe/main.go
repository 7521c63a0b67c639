// Package main provides the entry point for rv32pipe, the RV32I 5-stage
// pipeline simulator driver.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/archsim/rv32pipe/emu"
	"github.com/archsim/rv32pipe/insts"
	"github.com/archsim/rv32pipe/loader"
	"github.com/archsim/rv32pipe/pipeline"
	"github.com/archsim/rv32pipe/trace"
)

const dataMemorySize = 4096

func main() {
	var noForward bool

	rootCmd := &cobra.Command{
		Use:   "rv32pipe <program-file> <cycle-count>",
		Short: "Cycle-accurate RV32I 5-stage pipeline simulator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], noForward)
		},
	}
	rootCmd.Flags().BoolVar(&noForward, "no-forward", false, "disable operand forwarding (models the non-forwarding configuration)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(programPath, cycleArg string, noForward bool) error {
	cycles, err := strconv.Atoi(cycleArg)
	if err != nil || cycles < 0 {
		return fmt.Errorf("cycle-count must be a non-negative integer: %q", cycleArg)
	}

	prog, err := loader.Load(programPath)
	if err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}

	decoder := insts.NewDecoder()
	addrs := make([]uint32, len(prog.Words))
	program := make(map[uint32]*insts.Instruction, len(prog.Words))
	for i, word := range prog.Words {
		addr := prog.Addr(i)
		addrs[i] = addr
		program[addr] = decoder.Decode(word)
	}

	rec := trace.NewRecorder(cycles, addrs, program)

	regFile := &emu.RegFile{}
	imem := emu.NewInstructionMemory(prog.Words)
	dmem := emu.NewDataMemory(dataMemorySize)

	proc := pipeline.NewProcessor(regFile, imem, dmem,
		pipeline.WithForwarding(!noForward),
		pipeline.WithRecorder(rec),
	)
	proc.Run(cycles)

	outPath := outputPath(programPath, noForward)
	if err := os.WriteFile(outPath, []byte(rec.Dump()), 0o644); err != nil {
		return fmt.Errorf("failed to write trace output: %w", err)
	}

	return nil
}

// outputPath derives the trace file name from the input path by appending
// "_forward_out.txt" or "_noforward_out.txt".
func outputPath(programPath string, noForward bool) string {
	if noForward {
		return programPath + "_noforward_out.txt"
	}
	return programPath + "_forward_out.txt"
}
