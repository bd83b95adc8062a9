package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureDistanceSelf(t *testing.T) {
	tree := Default()
	assert.Equal(t, 0, tree.FeatureDistance("voiced", "voiced"))
}

func TestFeatureDistanceSymmetric(t *testing.T) {
	tree := Default()
	assert.Equal(t, tree.FeatureDistance("voiced", "nasal"), tree.FeatureDistance("nasal", "voiced"))
}

func TestFeatureDistanceSiblingsCloserThanCrossGroup(t *testing.T) {
	tree := Default()
	siblingDist := tree.FeatureDistance("voiced", "aspirated")   // both under Laryngeal
	crossDist := tree.FeatureDistance("voiced", "rounded")       // Laryngeal vs Place/Labial
	assert.Less(t, siblingDist, crossDist)
}

func TestFeatureDistanceUnknownIsMax(t *testing.T) {
	tree := Default()
	assert.Equal(t, maxDistance, tree.FeatureDistance("voiced", "not-a-real-feature"))
}

func TestSiblingsOfExcludesSelf(t *testing.T) {
	tree := Default()
	sibs := tree.SiblingsOf("voiced")
	_, hasSelf := sibs["voiced"]
	assert.False(t, hasSelf)
	_, hasPolarOpposite := sibs["voiceless"]
	assert.True(t, hasPolarOpposite)
	_, hasAspirated := sibs["aspirated"]
	assert.True(t, hasAspirated)
}

func TestSiblingsOfUnknownIsEmpty(t *testing.T) {
	tree := Default()
	assert.Empty(t, tree.SiblingsOf("nonexistent"))
}

func TestSoundDistanceIdenticalIsZero(t *testing.T) {
	tree := Default()
	fs := map[string]struct{}{"voiced": {}, "bilabial": {}}
	assert.Equal(t, 0.0, tree.SoundDistance(fs, fs))
}

func TestSoundDistanceEmptyIsZero(t *testing.T) {
	tree := Default()
	assert.Equal(t, 0.0, tree.SoundDistance(nil, nil))
}

func TestSoundDistanceBoundedByOne(t *testing.T) {
	tree := Default()
	a := map[string]struct{}{"voiced": {}}
	b := map[string]struct{}{"voiceless": {}, "nasal": {}, "rounded": {}}
	d := tree.SoundDistance(a, b)
	assert.GreaterOrEqual(t, d, 0.0)
	assert.LessOrEqual(t, d, 1.0)
}

func TestAllFeaturesContainsKnownLabels(t *testing.T) {
	tree := Default()
	all := tree.AllFeatures()
	require.Contains(t, all, "voiced")
	require.Contains(t, all, "nasal")
	require.Contains(t, all, "rounded")
}

func TestFindFeatureAndParent(t *testing.T) {
	tree := Default()
	f, ok := tree.FindFeature("voiced")
	require.True(t, ok)
	assert.Equal(t, "voice", f.Name)

	parent, ok := tree.FindParent("voiced")
	require.True(t, ok)
	assert.Equal(t, "Laryngeal", parent.Name)
}
