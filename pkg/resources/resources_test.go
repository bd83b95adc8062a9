package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltinIsMemoized(t *testing.T) {
	t1, err := Load(BuiltinDir)
	require.NoError(t, err)
	t2, err := Load(BuiltinDir)
	require.NoError(t, err)
	assert.Same(t, t1, t2)
}

func TestLoadSoundsContainsKnownGraphemes(t *testing.T) {
	tbl, err := Load(BuiltinDir)
	require.NoError(t, err)

	name, ok := tbl.Sounds["p"]
	require.True(t, ok)
	assert.Contains(t, name, "consonant")
	assert.Contains(t, name, "stop")
}

func TestLoadClassesHasExplicitGraphemes(t *testing.T) {
	tbl, err := Load(BuiltinDir)
	require.NoError(t, err)

	n, ok := tbl.Classes["N"]
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"m", "n", "ŋ"}, n.Graphemes)

	set := tbl.ClassGraphemes()["N"]
	_, hasM := set["m"]
	assert.True(t, hasM)
}

func TestLoadClassesFeaturesString(t *testing.T) {
	tbl, err := Load(BuiltinDir)
	require.NoError(t, err)
	assert.Equal(t, "vowel", tbl.ClassFeatures()["V"])
}

func TestFeatureValuesInversion(t *testing.T) {
	tbl, err := Load(BuiltinDir)
	require.NoError(t, err)

	phonation := tbl.FeatureValues()["phonation"]
	_, hasVoiced := phonation["voiced"]
	_, hasVoiceless := phonation["voiceless"]
	assert.True(t, hasVoiced)
	assert.True(t, hasVoiceless)
}

func TestLoadRejectsMissingDirectory(t *testing.T) {
	_, err := Load("/nonexistent/path/for/soundshift/test")
	assert.Error(t, err)
}

func TestLoadRejectsMissingDirectoryIsMemoizedAsError(t *testing.T) {
	_, err1 := Load("/another/nonexistent/path")
	_, err2 := Load("/another/nonexistent/path")
	require.Error(t, err1)
	require.Error(t, err2)
	assert.Equal(t, err1, err2)
}
