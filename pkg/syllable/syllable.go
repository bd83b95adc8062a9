// Package syllable implements a Sonority Sequencing Principle
// syllabifier: it assigns onset/nucleus/coda roles to the positions of
// a sequence so rules can condition on syllable position. The
// syllabifier is pure — the same input always yields the same output,
// with no global state.
package syllable

import "github.com/GriffinCanCode/soundshift/pkg/phon"

// Role is a syllable-position label for one sequence position.
type Role string

const (
	Onset    Role = "onset"
	Nucleus  Role = "nucleus"
	Coda     Role = "coda"
	Boundary Role = "boundary"
	Unknown  Role = ""
)

// Map is a syllable position lookup keyed by index into the original
// sequence.
type Map func(index int) Role

// Info describes one syllable's constituent element indices, kept
// alongside the position-keyed Map so heaviness/weight can be derived
// without re-deriving syllable boundaries from Map.
type Info struct {
	Onset   []int
	Nucleus []int
	Coda    []int
}

// Constraints bounds cluster sizes and enables the /s/ exception to
// strict SSP ordering in onsets.
type Constraints struct {
	AllowSCluster bool
	MaxOnset      int
	MaxCoda       int
}

// Config is the sonority scale (feature label -> rank) plus the
// cluster constraints the algorithm enforces.
type Config struct {
	SonorityScale map[string]int
	Constraints   Constraints
}

const vowelSonority = 5

// DefaultConfig is the scale named in the syllabifier's contract:
// vowel=5, approximant/lateral=4, trill/tap=3, nasal=2, fricative=1,
// stop=0.
func DefaultConfig() Config {
	return Config{
		SonorityScale: map[string]int{
			"vowel":       5,
			"approximant": 4,
			"lateral":     4,
			"trill":       3,
			"tap":         3,
			"nasal":       2,
			"fricative":   1,
			"stop":        0,
		},
		Constraints: Constraints{
			AllowSCluster: true,
			MaxOnset:      2,
			MaxCoda:       2,
		},
	}
}

func sonorityOf(feats map[string]struct{}, cfg Config) int {
	best := 0
	found := false
	for label, rank := range cfg.SonorityScale {
		if _, ok := feats[label]; ok {
			if !found || rank > best {
				best = rank
				found = true
			}
		}
	}
	return best
}

// Syllabify assigns onset/nucleus/coda/boundary roles to seq's
// positions and returns both the position-keyed Map and the list of
// syllables discovered, in left-to-right order.
func Syllabify(seq phon.Sequence, cfg Config) (Map, []Info) {
	n := len(seq)
	roles := make([]Role, n)
	sonority := make([]int, n)
	isVowel := make([]bool, n)
	isS := make([]bool, n)

	for i, e := range seq {
		switch v := e.(type) {
		case phon.Boundary:
			roles[i] = Boundary
		case phon.Sound:
			sonority[i] = sonorityOf(v.Features, cfg)
			isVowel[i] = sonority[i] >= vowelSonority
			isS[i] = v.Grapheme == "s"
		}
	}

	var nuclei [][2]int // [start, end) runs of consecutive vowels
	for i := 0; i < n; {
		if isVowel[i] {
			j := i
			for j < n && isVowel[j] {
				j++
			}
			nuclei = append(nuclei, [2]int{i, j})
			i = j
		} else {
			i++
		}
	}

	infos := make([]Info, len(nuclei))
	for idx, run := range nuclei {
		nucleusIdxs := indexRange(run[0], run[1])
		for _, k := range nucleusIdxs {
			roles[k] = Nucleus
		}
		infos[idx].Nucleus = nucleusIdxs
	}

	for idx, run := range nuclei {
		leftBound := 0
		if idx > 0 {
			leftBound = nuclei[idx-1][1]
		}
		cluster := consonantCluster(leftBound, run[0], roles)
		onsetIdxs, overflow := splitOnset(cluster, sonority, isS, cfg)
		for _, k := range onsetIdxs {
			roles[k] = Onset
		}
		infos[idx].Onset = onsetIdxs

		if idx > 0 {
			for _, k := range overflow {
				roles[k] = Coda
			}
			infos[idx-1].Coda = append(infos[idx-1].Coda, overflow...)
		} else {
			// Word-initial cluster longer than max_onset has no prior
			// syllable to spill into; keep it in the onset rather than
			// inventing an empty nucleus.
			onsetIdxs = append(append([]int{}, overflow...), onsetIdxs...)
			for _, k := range overflow {
				roles[k] = Onset
			}
			infos[idx].Onset = onsetIdxs
		}
	}

	if len(nuclei) > 0 {
		last := nuclei[len(nuclei)-1]
		cluster := consonantCluster(last[1], n, roles)
		for _, k := range cluster {
			roles[k] = Coda
		}
		infos[len(infos)-1].Coda = append(infos[len(infos)-1].Coda, cluster...)
	}

	m := func(index int) Role {
		if index < 0 || index >= len(roles) {
			return Unknown
		}
		return roles[index]
	}
	return m, infos
}

func indexRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

// consonantCluster collects the non-boundary positions in [from, to);
// embedded boundaries are skipped rather than breaking the cluster,
// per the syllabifier's "skip boundaries" rule.
func consonantCluster(from, to int, roles []Role) []int {
	var out []int
	for i := from; i < to; i++ {
		if roles[i] != Boundary {
			out = append(out, i)
		}
	}
	return out
}

// splitOnset walks the cluster from the position nearest the nucleus
// outward, keeping consonants while sonority is non-decreasing toward
// the nucleus (SSP), with a privileged /s/ exception at the cluster's
// outer edge when allowed. Positions that don't fit — either broken
// off by SSP or in excess of max_onset — are returned as overflow for
// the caller to assign to the preceding coda.
func splitOnset(cluster []int, sonority []int, isS []bool, cfg Config) (onset, overflow []int) {
	n := len(cluster)
	if n == 0 {
		return nil, nil
	}

	start := n - 1
	for i := n - 2; i >= 0; i-- {
		if sonority[cluster[i]] <= sonority[cluster[start]] {
			start = i
			continue
		}
		if cfg.Constraints.AllowSCluster && i == 0 && isS[cluster[i]] {
			start = i
			continue
		}
		break
	}

	onset = append([]int{}, cluster[start:]...)
	overflow = append([]int{}, cluster[:start]...)

	if len(onset) > cfg.Constraints.MaxOnset {
		excess := len(onset) - cfg.Constraints.MaxOnset
		overflow = append(overflow, onset[:excess]...)
		onset = onset[excess:]
	}
	return onset, overflow
}

// IsHeavy reports whether a syllable carries weight for stress
// assignment: it has a coda, or its nucleus contains a long vowel.
func IsHeavy(info Info, seq phon.Sequence) bool {
	if len(info.Coda) > 0 {
		return true
	}
	for _, i := range info.Nucleus {
		sound, ok := seq[i].(phon.Sound)
		if !ok {
			continue
		}
		if _, long := sound.Features["long"]; long {
			return true
		}
	}
	return false
}
