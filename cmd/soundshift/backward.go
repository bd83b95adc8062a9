package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/soundshift/pkg/apply"
	"github.com/GriffinCanCode/soundshift/pkg/frontend"
)

var backwardCmd = &cobra.Command{
	Use:   "backward <rule> <sequence>",
	Short: "Enumerate proto-forms a sequence could have come from under a rule",
	Args:  cobra.ExactArgs(2),
	RunE:  runBackward,
}

func init() {
	rootCmd.AddCommand(backwardCmd)
}

func runBackward(cmd *cobra.Command, args []string) error {
	rule, err := frontend.ParseRule(args[0], sys)
	if err != nil {
		return err
	}
	seq := frontend.ParseSequence(args[1], sys)

	candidates := apply.BackwardWithRecorder(seq, rule, sys, sylConfig(), rec)
	for _, c := range candidates {
		fmt.Println(c.String())
	}
	return nil
}
