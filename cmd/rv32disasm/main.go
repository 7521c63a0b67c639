// Package main provides rv32disasm, a standalone disassembler for the same
// plain-text program format rv32pipe consumes. It is a thin wrapper around
// insts.Disassemble and shares no state with the pipeline simulator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archsim/rv32pipe/insts"
	"github.com/archsim/rv32pipe/loader"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rv32disasm <program-file>",
		Short: "Disassemble a plain-text RV32I program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(programPath string) error {
	prog, err := loader.Load(programPath)
	if err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}

	decoder := insts.NewDecoder()
	for i, word := range prog.Words {
		inst := decoder.Decode(word)
		fmt.Printf("%08x: %08x  %s\n", prog.Addr(i), word, insts.Disassemble(inst))
	}

	return nil
}
