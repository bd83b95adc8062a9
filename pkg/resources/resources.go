// Package resources loads the read-only tabular data — graphemes,
// features, sound classes — that feature systems are built from. Each
// table is loaded at most once per source directory and held
// immutably for the lifetime of the process, per the resource loader's
// memoization contract.
package resources

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/GriffinCanCode/soundshift/internal/assets"
	"github.com/GriffinCanCode/soundshift/pkg/logger"
	"github.com/GriffinCanCode/soundshift/pkg/soundserr"
)

// BuiltinDir is the sentinel source directory that selects the
// embedded default tables instead of reading from disk.
const BuiltinDir = ""

// SoundRow is one row of sounds.tsv.
type SoundRow struct {
	Grapheme string `validate:"required"`
	Name     string `validate:"required"`
}

// FeatureRow is one row of features.tsv: a value and the feature axis
// it belongs to (e.g. "voiced" belongs to axis "phonation").
type FeatureRow struct {
	Value   string `validate:"required"`
	Feature string `validate:"required"`
}

// ClassRow is one row of classes.tsv.
type ClassRow struct {
	Letter      string `validate:"required"`
	Description string
	Features    string
	Graphemes   []string
}

// Tables is the immutable, fully-loaded set of resources for one
// source directory, plus the derivations §4.1 names as conveniences.
type Tables struct {
	Sounds  map[string]string // grapheme -> descriptive name
	Classes map[string]ClassRow

	featureValues   map[string]map[string]struct{} // feature -> set<value>
	classGraphemes  map[string]map[string]struct{}
	classFeatureStr map[string]string
}

// FeatureValues returns the feature -> set<value> inversion of
// features.tsv.
func (t *Tables) FeatureValues() map[string]map[string]struct{} { return t.featureValues }

// ClassGraphemes returns class letter -> explicit member grapheme set.
func (t *Tables) ClassGraphemes() map[string]map[string]struct{} { return t.classGraphemes }

// ClassFeatures returns class letter -> required-feature string
// (comma-separated, as stored in the FEATURES column).
func (t *Tables) ClassFeatures() map[string]string { return t.classFeatureStr }

var (
	cacheMu sync.Mutex
	cache   = map[string]*Tables{}
	cacheErr = map[string]error{}

	validate = validator.New()
)

// Load returns the memoized Tables for dir, loading them on first
// access. dir == BuiltinDir selects the tables embedded in the binary.
func Load(dir string) (*Tables, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if t, ok := cache[dir]; ok {
		return t, nil
	}
	if err, ok := cacheErr[dir]; ok {
		return nil, err
	}

	t, err := load(dir)
	if err != nil {
		cacheErr[dir] = err
		return nil, err
	}
	cache[dir] = t
	return t, nil
}

func load(dir string) (*Tables, error) {
	soundRows, err := loadSoundRows(dir)
	if err != nil {
		return nil, err
	}
	featureRows, err := loadFeatureRows(dir)
	if err != nil {
		return nil, err
	}
	classRows, err := loadClassRows(dir)
	if err != nil {
		return nil, err
	}

	sounds := make(map[string]string, len(soundRows))
	for _, r := range soundRows {
		if _, dup := sounds[r.Grapheme]; dup {
			return nil, soundserr.NewResourceError("sounds", fmt.Sprintf("duplicate grapheme %q", r.Grapheme))
		}
		sounds[r.Grapheme] = r.Name
	}

	featureValues := make(map[string]map[string]struct{})
	for _, r := range featureRows {
		if featureValues[r.Feature] == nil {
			featureValues[r.Feature] = make(map[string]struct{})
		}
		if _, dup := featureValues[r.Feature][r.Value]; dup {
			return nil, soundserr.NewResourceError("features", fmt.Sprintf("duplicate value %q for feature %q", r.Value, r.Feature))
		}
		featureValues[r.Feature][r.Value] = struct{}{}
	}

	classes := make(map[string]ClassRow, len(classRows))
	classGraphemes := make(map[string]map[string]struct{})
	classFeatureStr := make(map[string]string)
	for _, r := range classRows {
		if _, dup := classes[r.Letter]; dup {
			return nil, soundserr.NewResourceError("classes", fmt.Sprintf("duplicate sound class %q", r.Letter))
		}
		classes[r.Letter] = r
		classFeatureStr[r.Letter] = r.Features
		set := make(map[string]struct{}, len(r.Graphemes))
		for _, g := range r.Graphemes {
			set[g] = struct{}{}
		}
		classGraphemes[r.Letter] = set
	}

	logger.LogResourceLoaded("sounds", len(sounds))
	logger.LogResourceLoaded("features", len(featureRows))
	logger.LogResourceLoaded("classes", len(classes))

	return &Tables{
		Sounds:          sounds,
		Classes:         classes,
		featureValues:   featureValues,
		classGraphemes:  classGraphemes,
		classFeatureStr: classFeatureStr,
	}, nil
}

func loadSoundRows(dir string) ([]SoundRow, error) {
	records, err := readTSV(dir, "sounds.tsv", assets.SoundsTSV)
	if err != nil {
		return nil, err
	}
	rows := make([]SoundRow, 0, len(records))
	for i, rec := range records {
		row := SoundRow{Grapheme: get(rec, "GRAPHEME"), Name: get(rec, "NAME")}
		if err := validate.Struct(row); err != nil {
			return nil, soundserr.NewResourceError("sounds.tsv", fmt.Sprintf("row %d: %v", i, err))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func loadFeatureRows(dir string) ([]FeatureRow, error) {
	records, err := readTSV(dir, "features.tsv", assets.FeaturesTSV)
	if err != nil {
		return nil, err
	}
	rows := make([]FeatureRow, 0, len(records))
	for i, rec := range records {
		row := FeatureRow{Value: get(rec, "VALUE"), Feature: get(rec, "FEATURE")}
		if err := validate.Struct(row); err != nil {
			return nil, soundserr.NewResourceError("features.tsv", fmt.Sprintf("row %d: %v", i, err))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func loadClassRows(dir string) ([]ClassRow, error) {
	records, err := readTSV(dir, "classes.tsv", assets.ClassesTSV)
	if err != nil {
		return nil, err
	}
	rows := make([]ClassRow, 0, len(records))
	for i, rec := range records {
		var graphemes []string
		if g := get(rec, "GRAPHEMES"); g != "" {
			graphemes = strings.Split(g, "|")
		}
		row := ClassRow{
			Letter:      get(rec, "SOUND_CLASS"),
			Description: get(rec, "DESCRIPTION"),
			Features:    get(rec, "FEATURES"),
			Graphemes:   graphemes,
		}
		if err := validate.Struct(row); err != nil {
			return nil, soundserr.NewResourceError("classes.tsv", fmt.Sprintf("row %d: %v", i, err))
		}
		if row.Letter == "" || row.Letter != strings.ToUpper(row.Letter) {
			return nil, soundserr.NewResourceError("classes.tsv", fmt.Sprintf("row %d: SOUND_CLASS %q must be uppercase", i, row.Letter))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readTSV reads a tab-delimited file with a header row, returning each
// row as a header->value map. dir == BuiltinDir reads the embedded
// fallback instead of the filesystem.
func readTSV(dir, filename string, embedded []byte) ([]map[string]string, error) {
	var r io.Reader
	if dir == BuiltinDir {
		r = bytes.NewReader(embedded)
	} else {
		f, err := os.Open(filepath.Join(dir, filename))
		if err != nil {
			return nil, soundserr.NewResourceError(filename, err.Error())
		}
		defer f.Close()
		r = f
	}

	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, soundserr.NewResourceError(filename, err.Error())
	}
	if len(records) == 0 {
		return nil, soundserr.NewResourceError(filename, "empty resource file")
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func get(row map[string]string, key string) string {
	return strings.TrimSpace(row[key])
}
