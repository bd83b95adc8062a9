// Package features implements named feature systems: the bridge
// between graphemes ("p") and the feature sets that describe them
// ({consonant, voiceless, bilabial, stop}), plus the feature
// arithmetic rule application needs. Systems are registered once and
// looked up by name from a process-wide registry; the "ipa" builtin
// is constructed lazily on first use.
package features

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/soundshift/pkg/geometry"
	"github.com/GriffinCanCode/soundshift/pkg/logger"
	"github.com/GriffinCanCode/soundshift/pkg/resources"
	"github.com/GriffinCanCode/soundshift/pkg/soundserr"
)

// System is a named feature system: a bidirectional mapping between
// graphemes and feature sets, sound-class membership, feature
// arithmetic, and the phonological distance metrics gradient
// application needs.
type System interface {
	GraphemeToFeatures(grapheme string) (map[string]struct{}, bool)
	FeaturesToGrapheme(feats map[string]struct{}) (string, bool)
	AddFeatures(base, mods map[string]struct{}) map[string]struct{}
	IsClass(grapheme, class string) bool
	HasClass(class string) bool
	ClassFeatures(class string) map[string]struct{}
	PartialMatch(grapheme string, required map[string]struct{}) bool
	FeatureDistance(a, b string) int
	SoundDistance(a, b map[string]struct{}) float64
}

type ipaSystem struct {
	tables *resources.Tables

	// categoryTree groups mutually-exclusive descriptive values
	// (bilabial/alveolar/velar, voiced/voiceless, ...) by the axis
	// they belong to, so AddFeatures can replace a value's siblings
	// the way it would replace place-of-articulation on a consonant.
	categoryTree *geometry.Tree

	// distanceTree is the Clements & Hume geometry used for
	// FeatureDistance/SoundDistance.
	distanceTree *geometry.Tree

	graphemeFeatures map[string]map[string]struct{}
}

// Build constructs a feature system from the resource tables in dir
// (resources.BuiltinDir for the embedded defaults).
func Build(dir string) (System, error) {
	tables, err := resources.Load(dir)
	if err != nil {
		return nil, err
	}

	graphemeFeatures := make(map[string]map[string]struct{}, len(tables.Sounds))
	for grapheme, name := range tables.Sounds {
		feats := make(map[string]struct{})
		for _, word := range strings.Fields(name) {
			feats[word] = struct{}{}
		}
		graphemeFeatures[grapheme] = feats
	}

	categoryTree := buildCategoryTree(tables.FeatureValues())

	return &ipaSystem{
		tables:           tables,
		categoryTree:     categoryTree,
		distanceTree:     geometry.Default(),
		graphemeFeatures: graphemeFeatures,
	}, nil
}

func buildCategoryTree(axes map[string]map[string]struct{}) *geometry.Tree {
	children := make([]geometry.Node, 0, len(axes))
	axisNames := make([]string, 0, len(axes))
	for axis := range axes {
		axisNames = append(axisNames, axis)
	}
	sort.Strings(axisNames)

	for _, axis := range axisNames {
		values := axes[axis]
		valueNames := make([]string, 0, len(values))
		for v := range values {
			valueNames = append(valueNames, v)
		}
		sort.Strings(valueNames)

		leaves := make([]geometry.Node, 0, len(valueNames))
		for _, v := range valueNames {
			leaves = append(leaves, geometry.Feature{Name: v, Positive: v})
		}
		children = append(children, &geometry.Group{Name: axis, Children: leaves})
	}

	return geometry.New(&geometry.Group{Name: "ROOT", Children: children})
}

func (s *ipaSystem) GraphemeToFeatures(grapheme string) (map[string]struct{}, bool) {
	feats, ok := s.graphemeFeatures[grapheme]
	if !ok {
		logger.LogUnknownGrapheme(grapheme, "")
		return nil, false
	}
	out := make(map[string]struct{}, len(feats))
	for f := range feats {
		out[f] = struct{}{}
	}
	return out, true
}

// FeaturesToGrapheme returns the inventory grapheme whose feature set
// minimizes SoundDistance to feats, breaking ties by shortest grapheme
// then lexicographic order, per §4.3. An exact inventory match is just
// the case where that minimum distance happens to be 0.
func (s *ipaSystem) FeaturesToGrapheme(feats map[string]struct{}) (string, bool) {
	best := ""
	bestDist := math.Inf(1)
	found := false
	for grapheme, entry := range s.graphemeFeatures {
		d := s.distanceTree.SoundDistance(feats, entry)
		if !found || d < bestDist || (d == bestDist && closerTie(grapheme, best)) {
			best, bestDist, found = grapheme, d, true
		}
	}
	return best, found
}

// closerTie reports whether candidate should win a SoundDistance tie
// over current: shorter grapheme first, then lexicographic order.
func closerTie(candidate, current string) bool {
	if len(candidate) != len(current) {
		return len(candidate) < len(current)
	}
	return candidate < current
}

func (s *ipaSystem) AddFeatures(base, mods map[string]struct{}) map[string]struct{} {
	result := make(map[string]struct{}, len(base)+len(mods))
	for f := range base {
		result[f] = struct{}{}
	}
	for m := range mods {
		for sibling := range s.categoryTree.SiblingsOf(m) {
			delete(result, sibling)
		}
		result[m] = struct{}{}
	}
	return result
}

func (s *ipaSystem) HasClass(class string) bool {
	_, ok := s.tables.Classes[class]
	return ok
}

func (s *ipaSystem) ClassFeatures(class string) map[string]struct{} {
	raw := s.tables.ClassFeatures()[class]
	out := make(map[string]struct{})
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			out[f] = struct{}{}
		}
	}
	return out
}

func (s *ipaSystem) PartialMatch(grapheme string, required map[string]struct{}) bool {
	feats, ok := s.graphemeFeatures[grapheme]
	if !ok {
		return false
	}
	return PartialMatchFeatureSets(required, feats)
}

// PartialMatchFeatureSets reports whether every label in pattern is
// present in target — the raw feature-set subsumption the matcher
// uses for class-partial Sound matching against an element's actual
// features, including a synthesized element with no backing grapheme
// (e.g. one produced by an earlier back-reference rewrite).
func PartialMatchFeatureSets(pattern, target map[string]struct{}) bool {
	for label := range pattern {
		if _, ok := target[label]; !ok {
			return false
		}
	}
	return true
}

func (s *ipaSystem) IsClass(grapheme, class string) bool {
	if explicit, ok := s.tables.ClassGraphemes()[class]; ok {
		if _, member := explicit[grapheme]; member {
			return true
		}
	}
	return s.PartialMatch(grapheme, s.ClassFeatures(class))
}

func (s *ipaSystem) FeatureDistance(a, b string) int {
	return s.distanceTree.FeatureDistance(a, b)
}

func (s *ipaSystem) SoundDistance(a, b map[string]struct{}) float64 {
	return s.distanceTree.SoundDistance(a, b)
}

const builtinName = "ipa"

var (
	mu          sync.RWMutex
	registry    = map[string]System{}
	defaultName string
	builtinOnce sync.Once
)

func ensureBuiltin() {
	builtinOnce.Do(func() {
		sys, err := Build(resources.BuiltinDir)
		if err != nil {
			logger.LogOpaqueModifier(builtinName, "failed to build builtin feature system: "+err.Error())
			return
		}
		mu.Lock()
		registry[builtinName] = sys
		if defaultName == "" {
			defaultName = builtinName
		}
		mu.Unlock()
		logger.LogSystemRegistered(builtinName, true)
	})
}

// Register adds or replaces a named feature system in the process-wide
// registry. It does not change the default system.
func Register(name string, sys System) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = sys
	logger.LogSystemRegistered(name, false)
}

// Get looks up a registered feature system by name, lazily building
// the "ipa" builtin on first request.
func Get(name string) (System, error) {
	ensureBuiltin()
	mu.RLock()
	defer mu.RUnlock()
	sys, ok := registry[name]
	if !ok {
		return nil, soundserr.NewUnknownSystemError(name)
	}
	return sys, nil
}

// SetDefault changes which registered system Default returns.
func SetDefault(name string) error {
	ensureBuiltin()
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[name]; !ok {
		return soundserr.NewUnknownSystemError(name)
	}
	defaultName = name
	return nil
}

// Default returns the current default feature system, building the
// "ipa" builtin if nothing has claimed the default slot yet.
func Default() System {
	ensureBuiltin()
	mu.RLock()
	defer mu.RUnlock()
	return registry[defaultName]
}

// ApplyModifier applies a comma-separated modifier spec ("+voice,-nasal")
// to base, using sys for sibling-exclusive insertion of "+" (and bare,
// default-add) labels. A "-label" entry removes only that label,
// leaving siblings untouched. An unknown label passes through opaquely
// per the feature system's soft-error contract.
func ApplyModifier(sys System, base map[string]struct{}, modifier string) map[string]struct{} {
	result := make(map[string]struct{}, len(base))
	for f := range base {
		result[f] = struct{}{}
	}
	for _, item := range splitModifier(modifier) {
		if item == "" {
			continue
		}
		switch item[0] {
		case '-':
			delete(result, item[1:])
		case '+':
			result = sys.AddFeatures(result, map[string]struct{}{item[1:]: {}})
		default:
			result = sys.AddFeatures(result, map[string]struct{}{item: {}})
		}
	}
	return result
}

// InvertModifier flips every "+label"/"-label" (and bare, default-add)
// entry in modifier, for backward application's invert_modifiers step.
func InvertModifier(modifier string) string {
	items := splitModifier(modifier)
	inverted := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		switch item[0] {
		case '-':
			inverted = append(inverted, "+"+item[1:])
		case '+':
			inverted = append(inverted, "-"+item[1:])
		default:
			inverted = append(inverted, "-"+item)
		}
	}
	return strings.Join(inverted, ",")
}

func splitModifier(modifier string) []string {
	raw := strings.Split(modifier, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, strings.TrimSpace(r))
	}
	return out
}
