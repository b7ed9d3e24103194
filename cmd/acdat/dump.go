package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huan086/acdat/ahocorasick"
)

var dumpDBFile string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "print the (base,check,fail,output) table of a saved automaton",
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpDBFile, "db", "", "saved automaton file (required)")
	dumpCmd.MarkFlagRequired("db")
}

func runDump(cmd *cobra.Command, args []string) error {
	f, err := os.Open(dumpDBFile)
	if err != nil {
		return fmt.Errorf("opening automaton file: %w", err)
	}
	defer f.Close()

	automaton, err := ahocorasick.Load[int64](context.Background(), f, nil)
	if err != nil {
		return fmt.Errorf("loading automaton: %w", err)
	}

	fmt.Print(automaton.Dump())
	return nil
}
