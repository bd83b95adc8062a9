package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/soundshift/pkg/frontend"
	"github.com/GriffinCanCode/soundshift/pkg/syllable"
)

var syllabifyCmd = &cobra.Command{
	Use:   "syllabify <sequence>",
	Short: "Assign onset/nucleus/coda roles to a sequence's positions",
	Args:  cobra.ExactArgs(1),
	RunE:  runSyllabify,
}

func init() {
	rootCmd.AddCommand(syllabifyCmd)
}

func runSyllabify(cmd *cobra.Command, args []string) error {
	seq := frontend.ParseSequence(args[0], sys)
	roleMap, syllables := syllable.Syllabify(seq, sylConfig())

	roles := make([]string, len(seq))
	for i := range seq {
		roles[i] = string(roleMap(i))
	}
	fmt.Println(strings.Join(roles, " "))
	fmt.Printf("%d syllable(s)\n", len(syllables))

	word := syllable.Word{Seq: seq, Syllables: syllables}
	weights := word.Weight()
	for i, s := range syllables {
		fmt.Printf("  %d: onset=%v nucleus=%v coda=%v weight=%d\n", i+1, s.Onset, s.Nucleus, s.Coda, weights[i])
	}
	if h := word.HeaviestIndex(); h >= 0 {
		fmt.Printf("heaviest syllable: %d\n", h+1)
	}
	return nil
}
