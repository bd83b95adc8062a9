package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/soundshift/pkg/apply"
	"github.com/GriffinCanCode/soundshift/pkg/frontend"
)

var forwardCmd = &cobra.Command{
	Use:   "forward <rule> <sequence>",
	Short: "Apply a rule forward over a sequence",
	Args:  cobra.ExactArgs(2),
	RunE:  runForward,
}

func init() {
	rootCmd.AddCommand(forwardCmd)
}

func runForward(cmd *cobra.Command, args []string) error {
	rule, err := frontend.ParseRule(args[0], sys)
	if err != nil {
		return err
	}
	seq := frontend.ParseSequence(args[1], sys)

	out := apply.ForwardWithRecorder(seq, rule, sys, sylConfig(), rec)
	fmt.Println(out.String())
	return nil
}
