package rules

import (
	"fmt"
	"strings"
)

// Decision is the outcome of classifying one mesh object.
type Decision int

const (
	// ReduceStandard is the default fallback for unremarkable geometry.
	ReduceStandard Decision = iota
	// ReduceAggressive is for regions nobody looks at closely (soles,
	// belts, internal geometry).
	ReduceAggressive
	// SkipProtected covers operator-curated regions where fidelity beats
	// triangle savings (faces, hands, visible outlines).
	SkipProtected
	// SkipAnimated covers meshes carrying shape keys; any topology change
	// invalidates the morph deltas they encode.
	SkipAnimated
)

func (d Decision) String() string {
	switch d {
	case ReduceStandard:
		return "STANDARD"
	case ReduceAggressive:
		return "AGGRESSIVE"
	case SkipProtected:
		return "PROTECT"
	case SkipAnimated:
		return "SKIP"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Reduces reports whether the decision carries a decimation ratio.
func (d Decision) Reduces() bool {
	return d == ReduceStandard || d == ReduceAggressive
}

// Outcome is a decision plus, when reducing, the fraction of the original
// triangle count to retain.
type Outcome struct {
	Decision Decision
	Ratio    float64
}

// Ruleset holds the keyword lists and ratios driving classification.
// Keywords are case-insensitive substrings matched against object names.
type Ruleset struct {
	Preserve        []string
	Aggressive      []string
	StandardRatio   float64
	AggressiveRatio float64
}

// Default returns the stock Quest avatar policy.
func Default() Ruleset {
	return Ruleset{
		Preserve:        []string{"head", "face", "hand", "finger", "viseme", "outline"},
		Aggressive:      []string{"shoe", "boot", "belt", "strap", "inner", "prop", "accessory"},
		StandardRatio:   0.5,
		AggressiveRatio: 0.2,
	}
}

// Validate checks that both ratios are fractions in (0, 1].
func (r Ruleset) Validate() error {
	if r.StandardRatio <= 0 || r.StandardRatio > 1 {
		return fmt.Errorf("rules: standard ratio %g outside (0,1]", r.StandardRatio)
	}
	if r.AggressiveRatio <= 0 || r.AggressiveRatio > 1 {
		return fmt.Errorf("rules: aggressive ratio %g outside (0,1]", r.AggressiveRatio)
	}
	return nil
}

// Classify decides what to do with one mesh object. Pure function of the
// object's name and shape-key presence; first match wins:
//
//  1. shape keys present → SkipAnimated
//  2. name matches a Preserve keyword → SkipProtected
//  3. name matches an Aggressive keyword → ReduceAggressive
//  4. otherwise → ReduceStandard
//
// The Preserve check runs before Aggressive on purpose: an object matching
// both lists (e.g. "Head_Strap") stays protected.
func (r Ruleset) Classify(name string, hasShapeKeys bool) Outcome {
	if hasShapeKeys {
		return Outcome{Decision: SkipAnimated}
	}
	lower := strings.ToLower(name)
	if matchAny(lower, r.Preserve) {
		return Outcome{Decision: SkipProtected}
	}
	if matchAny(lower, r.Aggressive) {
		return Outcome{Decision: ReduceAggressive, Ratio: r.AggressiveRatio}
	}
	return Outcome{Decision: ReduceStandard, Ratio: r.StandardRatio}
}

func matchAny(lowerName string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lowerName, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
