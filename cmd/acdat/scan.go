package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huan086/acdat/ahocorasick"
	"github.com/huan086/acdat/ruleset"
	"github.com/huan086/acdat/ruleset/parser"
)

var (
	scanDBFile    string
	scanRulesFile string
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "load a saved automaton and scan a file for pattern hits",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanDBFile, "db", "", "saved automaton file")
	scanCmd.Flags().StringVar(&scanRulesFile, "rules", "", "rule file to evaluate instead of raw hits")
}

func runScan(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	if scanRulesFile != "" {
		return runRuleScan(scanRulesFile, string(data))
	}
	if scanDBFile == "" {
		return fmt.Errorf("one of --db or --rules is required")
	}
	return runDBScan(scanDBFile, string(data))
}

func runDBScan(dbFile, data string) error {
	f, err := os.Open(dbFile)
	if err != nil {
		return fmt.Errorf("opening automaton file: %w", err)
	}
	defer f.Close()

	automaton, err := ahocorasick.Load[int64](context.Background(), f, nil)
	if err != nil {
		return fmt.Errorf("loading automaton: %w", err)
	}

	hits := automaton.Parse(data)
	for _, h := range hits {
		fmt.Println(h.String())
	}
	fmt.Fprintf(os.Stderr, "%d hits\n", len(hits))
	return nil
}

func runRuleScan(rulesFile, data string) error {
	p, err := parser.New()
	if err != nil {
		return fmt.Errorf("building rule parser: %w", err)
	}
	rs, err := p.ParseFile(rulesFile)
	if err != nil {
		return fmt.Errorf("parsing rules: %w", err)
	}
	rules, err := ruleset.Compile(rs)
	if err != nil {
		return fmt.Errorf("compiling rules: %w", err)
	}

	matches := rules.Scan(context.Background(), data)
	for _, m := range matches {
		fmt.Printf("%s:", m.Rule)
		for _, s := range m.Strings {
			fmt.Printf(" %s=%d", s.Name, s.Value)
		}
		fmt.Println()
	}
	fmt.Fprintf(os.Stderr, "%d rules matched\n", len(matches))
	return nil
}
