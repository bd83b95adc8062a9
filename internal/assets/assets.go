// Package assets embeds the default resource tables shipped with the
// engine so a caller who never points at a custom resource directory
// still gets a usable "ipa" feature system out of the box.
package assets

import _ "embed"

//go:embed sounds.tsv
var SoundsTSV []byte

//go:embed features.tsv
var FeaturesTSV []byte

//go:embed classes.tsv
var ClassesTSV []byte
