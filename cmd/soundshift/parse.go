package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/soundshift/pkg/frontend"
)

var parseRuleCmd = &cobra.Command{
	Use:   "parse-rule <rule>",
	Short: "Parse a rule and print its ante, post, and context token counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runParseRule,
}

var parseSeqCmd = &cobra.Command{
	Use:   "parse-seq <sequence>",
	Short: "Parse a sequence and echo it back through the active feature system",
	Args:  cobra.ExactArgs(1),
	RunE:  runParseSeq,
}

func init() {
	rootCmd.AddCommand(parseRuleCmd, parseSeqCmd)
}

func runParseRule(cmd *cobra.Command, args []string) error {
	rule, err := frontend.ParseRule(args[0], sys)
	if err != nil {
		return err
	}
	fmt.Printf("ante: %d token(s)\npost: %d token(s)\ncontext: %d token(s)\n", len(rule.Ante), len(rule.Post), len(rule.Context))
	fmt.Printf("inverted: %s\n", rule.Invert().String())
	return nil
}

func runParseSeq(cmd *cobra.Command, args []string) error {
	seq := frontend.ParseSequence(args[0], sys)
	fmt.Println(seq.String())
	return nil
}
