// Package config loads the engine's runtime configuration: the
// resource directory a feature system builds from and the syllabifier
// settings rule applications condition on. Only cmd/soundshift needs
// this — library callers that embed pkg/features and pkg/apply
// directly pass their own syllable.Config.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GriffinCanCode/soundshift/pkg/resources"
	"github.com/GriffinCanCode/soundshift/pkg/soundserr"
	"github.com/GriffinCanCode/soundshift/pkg/syllable"
)

// Config is the engine's runtime configuration.
type Config struct {
	ResourceDir string         `yaml:"resource_dir"`
	System      string         `yaml:"system"`
	Syllable    SyllableConfig `yaml:"syllable"`
	LogLevel    string         `yaml:"log_level"`
	LogFormat   string         `yaml:"log_format"`
}

// SyllableConfig mirrors syllable.Config in a YAML/env-friendly shape.
type SyllableConfig struct {
	SonorityScale map[string]int `yaml:"sonority_scale"`
	AllowSCluster bool           `yaml:"allow_s_cluster"`
	MaxOnset      int            `yaml:"max_onset"`
	MaxCoda       int            `yaml:"max_coda"`
}

// Default returns the configuration the engine uses when nothing
// overrides it: the embedded builtin resources, the "ipa" system, and
// syllable.DefaultConfig()'s scale and constraints.
func Default() Config {
	sc := syllable.DefaultConfig()
	return Config{
		ResourceDir: resources.BuiltinDir,
		System:      "ipa",
		Syllable: SyllableConfig{
			SonorityScale: sc.SonorityScale,
			AllowSCluster: sc.Constraints.AllowSCluster,
			MaxOnset:      sc.Constraints.MaxOnset,
			MaxCoda:       sc.Constraints.MaxCoda,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads a YAML configuration file at path, filling any field it
// doesn't set from Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, soundserr.NewResourceError(path, err.Error())
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, soundserr.NewResourceError(path, fmt.Sprintf("invalid config: %v", err))
	}
	return cfg, nil
}

// envPrefix names the environment variables LoadEnv reads.
const envPrefix = "SOUNDSHIFT_"

// LoadEnv overlays environment variables onto Default():
// SOUNDSHIFT_RESOURCE_DIR, SOUNDSHIFT_SYSTEM, SOUNDSHIFT_LOG_LEVEL,
// SOUNDSHIFT_LOG_FORMAT, SOUNDSHIFT_MAX_ONSET, SOUNDSHIFT_MAX_CODA,
// SOUNDSHIFT_ALLOW_S_CLUSTER. Unset variables leave the default.
func LoadEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv(envPrefix + "RESOURCE_DIR"); v != "" {
		cfg.ResourceDir = v
	}
	if v := os.Getenv(envPrefix + "SYSTEM"); v != "" {
		cfg.System = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv(envPrefix + "MAX_ONSET"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, soundserr.NewResourceError(envPrefix+"MAX_ONSET", err.Error())
		}
		cfg.Syllable.MaxOnset = n
	}
	if v := os.Getenv(envPrefix + "MAX_CODA"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, soundserr.NewResourceError(envPrefix+"MAX_CODA", err.Error())
		}
		cfg.Syllable.MaxCoda = n
	}
	if v := os.Getenv(envPrefix + "ALLOW_S_CLUSTER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, soundserr.NewResourceError(envPrefix+"ALLOW_S_CLUSTER", err.Error())
		}
		cfg.Syllable.AllowSCluster = b
	}
	return cfg, nil
}

// ToSyllableConfig converts the loaded configuration to syllable.Config.
func (c Config) ToSyllableConfig() syllable.Config {
	return syllable.Config{
		SonorityScale: c.Syllable.SonorityScale,
		Constraints: syllable.Constraints{
			AllowSCluster: c.Syllable.AllowSCluster,
			MaxOnset:      c.Syllable.MaxOnset,
			MaxCoda:       c.Syllable.MaxCoda,
		},
	}
}
