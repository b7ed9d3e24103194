package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huan086/acdat/patterns"
)

var (
	buildPatternsFile string
	buildOutFile      string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "build an automaton from a pattern-set fixture and save it",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildPatternsFile, "patterns", "", "YAML pattern-set fixture (required)")
	buildCmd.Flags().StringVar(&buildOutFile, "out", "", "output automaton file (required)")
	buildCmd.MarkFlagRequired("patterns")
	buildCmd.MarkFlagRequired("out")
}

func runBuild(cmd *cobra.Command, args []string) error {
	set, err := patterns.Load(buildPatternsFile)
	if err != nil {
		return err
	}

	b, err := set.Builder()
	if err != nil {
		return err
	}
	automaton, err := b.Build()
	if err != nil {
		return fmt.Errorf("building automaton: %w", err)
	}

	f, err := os.Create(buildOutFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := automaton.Save(context.Background(), f, true); err != nil {
		return fmt.Errorf("saving automaton: %w", err)
	}

	fmt.Printf("built %q: %d patterns -> %s\n", set.Name, automaton.Count(), buildOutFile)
	return nil
}
