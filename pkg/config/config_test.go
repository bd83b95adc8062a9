package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesSyllableDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 2, cfg.Syllable.MaxOnset)
	assert.Equal(t, 2, cfg.Syllable.MaxCoda)
	assert.True(t, cfg.Syllable.AllowSCluster)
	assert.Equal(t, "ipa", cfg.System)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SOUNDSHIFT_MAX_ONSET", "3")
	t.Setenv("SOUNDSHIFT_LOG_LEVEL", "DEBUG")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Syllable.MaxOnset)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Syllable.MaxCoda)
}

func TestLoadEnvRejectsInvalidInt(t *testing.T) {
	t.Setenv("SOUNDSHIFT_MAX_ONSET", "not-a-number")
	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/soundshift.yaml"
	content := "resource_dir: /tmp/res\nsystem: custom\nlog_level: warn\nsyllable:\n  max_onset: 1\n  max_coda: 1\n  allow_s_cluster: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/res", cfg.ResourceDir)
	assert.Equal(t, "custom", cfg.System)
	assert.Equal(t, 1, cfg.Syllable.MaxOnset)
	assert.False(t, cfg.Syllable.AllowSCluster)
}

func TestLoadMissingFileReturnsResourceError(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestToSyllableConfigRoundTrips(t *testing.T) {
	cfg := Default()
	sc := cfg.ToSyllableConfig()
	assert.Equal(t, cfg.Syllable.MaxOnset, sc.Constraints.MaxOnset)
	assert.Equal(t, cfg.Syllable.SonorityScale["vowel"], sc.SonorityScale["vowel"])
}
