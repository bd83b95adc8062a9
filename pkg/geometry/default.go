package geometry

// Default returns the Clements & Hume (1995) feature geometry tree used
// by the built-in "ipa" feature system. It is built fresh on every call;
// pkg/features calls it once for each feature system it builds.
func Default() *Tree {
	return New(&Group{
		Name: "Root",
		Children: []Node{
			&Group{
				Name: "Laryngeal",
				Children: []Node{
					Feature{Name: "voice", Positive: "voiced", Negative: "voiceless"},
					Feature{Name: "spread_glottis", Positive: "aspirated"},
					Feature{Name: "constricted_glottis", Positive: "glottalized"},
					Feature{Name: "breathy_voice", Positive: "breathy"},
					Feature{Name: "creaky_voice", Positive: "creaky"},
				},
			},
			&Group{
				Name: "Manner",
				Children: []Node{
					Feature{Name: "sonorant", Positive: "sonorant", Negative: "obstruent"},
					Feature{Name: "continuant", Positive: "continuant"},
					Feature{Name: "nasal", Positive: "nasal"},
					Feature{Name: "lateral", Positive: "lateral"},
					Feature{Name: "strident", Positive: "sibilant"},
					Feature{Name: "delayed_release", Positive: "affricate"},
					Feature{Name: "tap_feature", Positive: "tap"},
					Feature{Name: "syllabic", Positive: "syllabic", Negative: "non-syllabic"},
				},
			},
			&Group{
				Name: "Place",
				Children: []Node{
					&Group{
						Name:     "Labial",
						Children: []Node{Feature{Name: "round", Positive: "rounded", Negative: "unrounded"}},
					},
					&Group{
						Name: "Coronal",
						Children: []Node{
							Feature{Name: "anterior", Positive: "anterior"},
							Feature{Name: "distributed", Positive: "distributed"},
						},
					},
					&Group{
						Name: "Dorsal",
						Children: []Node{
							Feature{Name: "high", Positive: "close", Negative: "open"},
							Feature{Name: "low", Positive: "near-open", Negative: "near-close"},
							Feature{Name: "back", Positive: "back", Negative: "front"},
						},
					},
					&Group{
						Name: "Pharyngeal",
						Children: []Node{
							Feature{Name: "pharyngeal_place", Positive: "pharyngeal"},
							Feature{Name: "epiglottal_place", Positive: "epiglottal"},
						},
					},
					&Group{
						Name:     "Glottal",
						Children: []Node{Feature{Name: "glottal_place", Positive: "glottal"}},
					},
				},
			},
			&Group{
				Name: "TongueRoot",
				Children: []Node{
					Feature{Name: "atr", Positive: "advanced-tongue-root", Negative: "retracted-tongue-root"},
				},
			},
			&Group{
				Name: "Prosodic",
				Children: []Node{
					Feature{Name: "long_feature", Positive: "long"},
					Feature{Name: "nasalized_feature", Positive: "nasalized"},
					Feature{Name: "labialized_feature", Positive: "labialized"},
					Feature{Name: "palatalized_feature", Positive: "palatalized"},
					Feature{Name: "pharyngealized_feature", Positive: "pharyngealized"},
					Feature{Name: "ejective_feature", Positive: "ejective"},
					Feature{Name: "stress_feature", Positive: "primary-stress"},
				},
			},
		},
	})
}
