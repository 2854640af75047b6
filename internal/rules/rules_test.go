package rules

import "testing"

func TestClassify(t *testing.T) {
	rs := Default()

	tests := []struct {
		name         string
		objName      string
		hasShapeKeys bool
		want         Decision
		wantRatio    float64
	}{
		{"shape keys win over everything", "Body_Face", true, SkipAnimated, 0},
		{"plain body falls through to standard", "Body", false, ReduceStandard, 0.5},
		{"preserve keyword", "Face_Mesh", false, SkipProtected, 0},
		{"preserve is case-insensitive", "LEFT_HAND", false, SkipProtected, 0},
		{"aggressive keyword", "Boots", false, ReduceAggressive, 0.2},
		{"aggressive substring mid-name", "left_shoe_sole", false, ReduceAggressive, 0.2},
		{"preserve beats aggressive", "Head_Strap", false, SkipProtected, 0},
		{"unlisted name gets standard", "Torso", false, ReduceStandard, 0.5},
		{"viseme mesh without shape keys still protected", "viseme_proxy", false, SkipProtected, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rs.Classify(tt.objName, tt.hasShapeKeys)
			if got.Decision != tt.want {
				t.Errorf("Classify(%q, %v) = %v, want %v", tt.objName, tt.hasShapeKeys, got.Decision, tt.want)
			}
			if got.Ratio != tt.wantRatio {
				t.Errorf("Classify(%q, %v) ratio = %g, want %g", tt.objName, tt.hasShapeKeys, got.Ratio, tt.wantRatio)
			}
		})
	}
}

func TestClassifyCustomRuleset(t *testing.T) {
	rs := Ruleset{
		Preserve:        []string{"Keep"},
		Aggressive:      []string{"crush"},
		StandardRatio:   0.7,
		AggressiveRatio: 0.1,
	}

	// Keyword case folding applies to both sides.
	if got := rs.Classify("keepsake", false); got.Decision != SkipProtected {
		t.Errorf("expected SkipProtected, got %v", got.Decision)
	}
	if got := rs.Classify("CRUSHED_BOX", false); got.Decision != ReduceAggressive || got.Ratio != 0.1 {
		t.Errorf("expected ReduceAggressive/0.1, got %v/%g", got.Decision, got.Ratio)
	}
	if got := rs.Classify("anything", false); got.Ratio != 0.7 {
		t.Errorf("expected standard ratio 0.7, got %g", got.Ratio)
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default ruleset should validate: %v", err)
	}

	bad := Default()
	bad.StandardRatio = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero standard ratio")
	}

	bad = Default()
	bad.AggressiveRatio = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("expected error for aggressive ratio above 1")
	}
}

func TestDecisionString(t *testing.T) {
	pairs := map[Decision]string{
		ReduceStandard:   "STANDARD",
		ReduceAggressive: "AGGRESSIVE",
		SkipProtected:    "PROTECT",
		SkipAnimated:     "SKIP",
	}
	for d, want := range pairs {
		if d.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(d), d.String(), want)
		}
	}
	if !ReduceStandard.Reduces() || !ReduceAggressive.Reduces() {
		t.Error("reduce decisions should report Reduces()")
	}
	if SkipAnimated.Reduces() || SkipProtected.Reduces() {
		t.Error("skip decisions should not report Reduces()")
	}
}
