// Package geometry implements the phonological feature geometry tree
// (Clements & Hume 1995): a hierarchical organization of feature
// contrasts where sibling features under the same parent are mutually
// exclusive, and tree depth indicates how marked/unusual a feature is.
//
// The tree is built once and never mutated; every method here is a pure
// read over an immutable structure.
package geometry

import "github.com/GriffinCanCode/soundshift/pkg/logger"

// maxDistance is returned for any pair involving an unknown feature
// label, per the feature-system contract's "soft error" policy.
const maxDistance = 999

// Node is the sealed union of tree node kinds: a Feature leaf carrying
// a positive/negative polar pair, or a Group node bundling children
// under a shared name (e.g. "Place", "Coronal").
type Node interface {
	node()
}

// Feature is a leaf node: a single binary (or privative) phonological
// contrast. Negative may be empty for privative features (e.g. "nasal"
// has no negative counterpart in this tree).
type Feature struct {
	Name     string
	Positive string
	Negative string
}

func (Feature) node() {}

// Group is an internal node bundling sibling Features or sub-Groups.
type Group struct {
	Name     string
	Children []Node
}

func (Group) node() {}

// Tree wraps an immutable Group root and answers the geometry queries
// the feature system and matcher depend on.
type Tree struct {
	root *Group
}

// New builds a Tree over the given root. The root is never mutated
// after construction.
func New(root *Group) *Tree {
	return &Tree{root: root}
}

// AllFeatures returns the set of every positive/negative label reachable
// from the root.
func (t *Tree) AllFeatures() map[string]struct{} {
	out := make(map[string]struct{})
	collectFeatures(t.root, out)
	return out
}

func collectFeatures(n *Group, out map[string]struct{}) {
	for _, child := range n.Children {
		switch c := child.(type) {
		case Feature:
			if c.Positive != "" {
				out[c.Positive] = struct{}{}
			}
			if c.Negative != "" {
				out[c.Negative] = struct{}{}
			}
		case *Group:
			collectFeatures(c, out)
		}
	}
}

// FindFeature looks up the Feature leaf owning a positive or negative
// label.
func (t *Tree) FindFeature(label string) (Feature, bool) {
	return findFeature(t.root, label)
}

func findFeature(n *Group, label string) (Feature, bool) {
	for _, child := range n.Children {
		switch c := child.(type) {
		case Feature:
			if c.Positive == label || c.Negative == label {
				return c, true
			}
		case *Group:
			if f, ok := findFeature(c, label); ok {
				return f, true
			}
		}
	}
	return Feature{}, false
}

// FindParent returns the Group directly containing the Feature leaf
// for label.
func (t *Tree) FindParent(label string) (*Group, bool) {
	return findParent(t.root, label)
}

func findParent(n *Group, label string) (*Group, bool) {
	for _, child := range n.Children {
		switch c := child.(type) {
		case Feature:
			if c.Positive == label || c.Negative == label {
				return n, true
			}
		case *Group:
			if p, ok := findParent(c, label); ok {
				return p, true
			}
		}
	}
	return nil, false
}

// SiblingsOf returns every positive/negative label of the Features under
// label's parent Group other than label itself, its own polar opposite
// included — the set that add_features must evict before inserting label.
func (t *Tree) SiblingsOf(label string) map[string]struct{} {
	out := make(map[string]struct{})
	parent, ok := t.FindParent(label)
	if !ok {
		return out
	}
	for _, child := range parent.Children {
		f, ok := child.(Feature)
		if !ok {
			continue
		}
		if f.Positive != "" && f.Positive != label {
			out[f.Positive] = struct{}{}
		}
		if f.Negative != "" && f.Negative != label {
			out[f.Negative] = struct{}{}
		}
	}
	return out
}

// pathTo returns the chain of node names from the root down to and
// including label, or nil if label is unknown.
func (t *Tree) pathTo(label string) []string {
	return pathTo(t.root, label)
}

func pathTo(n *Group, label string) []string {
	for _, child := range n.Children {
		switch c := child.(type) {
		case Feature:
			if c.Positive == label || c.Negative == label {
				return []string{n.Name, c.Name, label}
			}
		case *Group:
			if sub := pathTo(c, label); sub != nil {
				return append([]string{n.Name}, sub...)
			}
		}
	}
	return nil
}

// FeatureDistance returns the tree-edge distance depth(a) + depth(b) -
// 2*depth(LCA(a,b)). Unknown labels return a large default distance.
func (t *Tree) FeatureDistance(a, b string) int {
	if a == b {
		return 0
	}
	pathA := t.pathTo(a)
	pathB := t.pathTo(b)
	if pathA == nil {
		logger.LogUnknownFeature(a)
	}
	if pathB == nil {
		logger.LogUnknownFeature(b)
	}
	if pathA == nil || pathB == nil {
		return maxDistance
	}
	common := 0
	for common < len(pathA) && common < len(pathB) && pathA[common] == pathB[common] {
		common++
	}
	return (len(pathA) - common) + (len(pathB) - common)
}

func (t *Tree) depthOf(label string) int {
	path := t.pathTo(label)
	if path == nil {
		return 0
	}
	// path includes root name and the feature's own group/leaf names;
	// depth is edges from root, i.e. len(path)-1.
	return len(path) - 1
}

// SoundDistance computes a normalized distance between two feature sets:
// for every label in their symmetric difference, weight 1/(1+depth) is
// accumulated; the total is normalized by the summed weight of the union
// so identical sets distance to 0 and disjoint sets distance to at most 1.
func (t *Tree) SoundDistance(a, b map[string]struct{}) float64 {
	union := make(map[string]struct{}, len(a)+len(b))
	for l := range a {
		union[l] = struct{}{}
	}
	for l := range b {
		union[l] = struct{}{}
	}
	if len(union) == 0 {
		return 0
	}

	var totalWeight, diffWeight float64
	for label := range union {
		weight := 1.0 / float64(1+t.depthOf(label))
		totalWeight += weight
		_, inA := a[label]
		_, inB := b[label]
		if inA != inB {
			diffWeight += weight
		}
	}
	if totalWeight == 0 {
		return 0
	}
	return diffWeight / totalWeight
}

// Root returns the tree's root Group so callers (e.g. the default
// process-wide tree builder) can inspect or wrap it.
func (t *Tree) Root() *Group {
	return t.root
}
