package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/soundshift/pkg/apply"
	"github.com/GriffinCanCode/soundshift/pkg/frontend"
)

var (
	gradientStrength float64
	gradientSeed     int64
	gradientHasSeed  bool
)

var gradientCmd = &cobra.Command{
	Use:   "gradient <rule> <sequence>",
	Short: "Apply a rule probabilistically at each matching site",
	Args:  cobra.ExactArgs(2),
	RunE:  runGradient,
}

func init() {
	gradientCmd.Flags().Float64VarP(&gradientStrength, "strength", "s", 0.5, "probability in [0,1] that a matching site is rewritten")
	gradientCmd.Flags().Int64Var(&gradientSeed, "seed", 0, "deterministic RNG seed (default: derived from a fresh UUID)")
	gradientCmd.Flags().BoolVar(&gradientHasSeed, "fixed-seed", false, "use --seed instead of a random one")
	rootCmd.AddCommand(gradientCmd)
}

func runGradient(cmd *cobra.Command, args []string) error {
	rule, err := frontend.ParseRule(args[0], sys)
	if err != nil {
		return err
	}
	seq := frontend.ParseSequence(args[1], sys)

	var seedPtr *int64
	if gradientHasSeed {
		seedPtr = &gradientSeed
	}

	out := apply.ApplyGradientWithConfig(seq, rule, gradientStrength, sys, seedPtr, sylConfig())
	fmt.Println(out.String())
	return nil
}
