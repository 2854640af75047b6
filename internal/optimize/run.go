// Package optimize sequences one batch run: classify every mesh object in a
// scene, request the host to bake the chosen decimations, and export a
// modified copy next to the input.
package optimize

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"avatar-quest-optimizer/internal/host"
	"avatar-quest-optimizer/internal/rules"
	"avatar-quest-optimizer/internal/texture"
)

// DefaultSuffix is appended to the input's base name for the output file.
const DefaultSuffix = "_QUEST_SMART"

// Options configure one run.
type Options struct {
	Rules    rules.Ruleset
	Decimate host.DecimateOptions
	Export   host.ExportOptions
	Suffix   string // output filename suffix; DefaultSuffix when empty
	Log      *zap.SugaredLogger
}

// ObjectResult records the classification and outcome for one mesh object.
type ObjectResult struct {
	Name            string  `json:"name"`
	Decision        string  `json:"decision"`
	Ratio           float64 `json:"ratio,omitempty"`
	TrianglesBefore int     `json:"triangles_before"`
	TrianglesAfter  int     `json:"triangles_after,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// Report aggregates everything one run did.
type Report struct {
	Input    string           `json:"input"`
	Output   string           `json:"output"`
	Objects  []ObjectResult   `json:"objects"`
	Textures []texture.Result `json:"textures,omitempty"`
}

// OutputPath derives the export path: same directory, base name plus suffix,
// same extension.
func OutputPath(input, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(filepath.Dir(input), base+suffix+ext)
}

// Run visits every mesh object exactly once, classifies it, and submits one
// Reduce call for the objects that survive classification. Skipped objects
// are never touched. A per-object reduction failure is recorded and logged
// but never stops later objects or the export; the export always runs, even
// when nothing was reduced.
func Run(ctx context.Context, h host.Host, input string, opts Options) (*Report, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}

	output := OutputPath(input, opts.Suffix)
	report := &Report{Input: input, Output: output}

	objects, err := h.ListObjects(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("optimize: list objects: %w", err)
	}

	var requests []host.DecimateRequest
	resultIdx := make(map[string]int)

	for _, obj := range objects {
		if !obj.IsMesh() {
			continue
		}

		outcome := opts.Rules.Classify(obj.Name, obj.HasShapeKeys())
		switch outcome.Decision {
		case rules.SkipAnimated:
			log.Infof("  [SKIP] '%s' has Shape Keys (Face/Visemes detected).", obj.Name)
		case rules.SkipProtected:
			log.Infof("  [PROTECT] '%s' matches preservation list.", obj.Name)
		case rules.ReduceAggressive:
			log.Infof("  [AGGRESSIVE] '%s' identified as high-compression target.", obj.Name)
		case rules.ReduceStandard:
			log.Infof("  [STANDARD] Decimating '%s'...", obj.Name)
		}

		res := ObjectResult{
			Name:            obj.Name,
			Decision:        outcome.Decision.String(),
			Ratio:           outcome.Ratio,
			TrianglesBefore: obj.Triangles,
		}
		report.Objects = append(report.Objects, res)

		if outcome.Decision.Reduces() {
			resultIdx[obj.Name] = len(report.Objects) - 1
			requests = append(requests, host.DecimateRequest{
				Object: obj.Name,
				Ratio:  outcome.Ratio,
			})
		}
	}

	results, err := h.Reduce(ctx, input, requests, opts.Decimate, opts.Export, output)
	if err != nil {
		return report, fmt.Errorf("optimize: reduce: %w", err)
	}

	for _, res := range results {
		idx, ok := resultIdx[res.Object]
		if !ok {
			log.Warnf("  [WARN] host reported unknown object '%s'", res.Object)
			continue
		}
		if res.OK {
			report.Objects[idx].TrianglesAfter = res.Triangles
		} else {
			report.Objects[idx].Error = res.Error
			log.Errorf("  [ERROR] Could not optimize %s: %s", res.Object, res.Error)
		}
	}

	return report, nil
}
