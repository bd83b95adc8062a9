package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/soundshift/pkg/apply"
	"github.com/GriffinCanCode/soundshift/pkg/frontend"
	"github.com/GriffinCanCode/soundshift/pkg/logger"
)

var batchDirection string

var batchCmd = &cobra.Command{
	Use:   "batch <rules.tsv> <sequences.txt>",
	Short: "Apply every rule in a TSV file to every sequence in an input file",
	Long: `batch reads one rule per line from rules.tsv (a bare rule string
per row, blank lines and lines starting with # skipped) and applies
each in turn, in file order, to each sequence read from
sequences.txt (one whitespace-separated sequence per line).`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchDirection, "direction", "forward", "forward or backward")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchDirection != "forward" && batchDirection != "backward" {
		return fmt.Errorf("--direction must be forward or backward, got %q", batchDirection)
	}

	rules, err := readRuleFile(args[0])
	if err != nil {
		return err
	}
	sequences, err := readLineFile(args[1])
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	log := logger.With("batch_id", runID, "direction", batchDirection, "rules", len(rules), "sequences", len(sequences))

	for _, ruleSrc := range rules {
		rule, err := frontend.ParseRule(ruleSrc, sys)
		if err != nil {
			log.Error("rule parse failed", "rule", ruleSrc, "error", err)
			fmt.Fprintf(os.Stderr, "skipping %q: %v\n", ruleSrc, err)
			continue
		}
		for _, seqSrc := range sequences {
			seq := frontend.ParseSequence(seqSrc, sys)
			if batchDirection == "backward" {
				for _, c := range apply.BackwardWithRecorder(seq, rule, sys, sylConfig(), rec) {
					fmt.Printf("%s\t%s\t%s\n", ruleSrc, seqSrc, c.String())
				}
				continue
			}
			out := apply.ForwardWithRecorder(seq, rule, sys, sylConfig(), rec)
			fmt.Printf("%s\t%s\t%s\n", ruleSrc, seqSrc, out.String())
		}
	}
	log.Info("batch run complete")
	return nil
}

func readRuleFile(path string) ([]string, error) {
	lines, err := readLineFile(path)
	if err != nil {
		return nil, err
	}
	var rules []string
	for _, l := range lines {
		if strings.HasPrefix(l, "#") {
			continue
		}
		rules = append(rules, l)
	}
	return rules, nil
}

func readLineFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
