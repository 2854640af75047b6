// Package host abstracts the 3D engine that owns scene import/export and
// geometry mutation. The optimizer core never parses FBX or touches
// triangles itself; it only asks a Host to do so.
package host

import "context"

// SceneObject describes one object in an imported scene.
type SceneObject struct {
	Name      string `json:"name"`
	Type      string `json:"type"` // MESH, ARMATURE, EMPTY, LIGHT, ...
	ShapeKeys int    `json:"shape_keys"`
	Triangles int    `json:"triangles"`
}

// IsMesh reports whether the object carries mesh geometry.
func (o SceneObject) IsMesh() bool {
	return o.Type == "MESH"
}

// HasShapeKeys reports whether the object carries any shape-key channel.
func (o SceneObject) HasShapeKeys() bool {
	return o.ShapeKeys > 0
}

// DecimateRequest asks for one object to be collapsed toward
// Ratio × original_triangle_count.
type DecimateRequest struct {
	Object string  `json:"object"`
	Ratio  float64 `json:"ratio"`
}

// DecimateOptions is the boundary policy applied to every decimation.
type DecimateOptions struct {
	Triangulate bool     `json:"triangulate"`
	UseSymmetry bool     `json:"use_symmetry"`
	Delimit     []string `json:"delimit"` // edge kinds never collapsed across
}

// DefaultDecimateOptions returns the fixed seam-protection policy:
// triangulated collapse, symmetry off, never collapse across a UV seam or
// material boundary.
func DefaultDecimateOptions() DecimateOptions {
	return DecimateOptions{
		Triangulate: true,
		UseSymmetry: false,
		Delimit:     []string{"UV", "MATERIAL"},
	}
}

// ExportOptions control how the mutated scene is written back out.
type ExportOptions struct {
	UseSelection   bool    `json:"use_selection"`
	GlobalScale    float64 `json:"global_scale"`
	ApplyUnitScale bool    `json:"apply_unit_scale"`
	AddLeafBones   bool    `json:"add_leaf_bones"`
	BakeAnim       bool    `json:"bake_anim"`
}

// DefaultExportOptions returns the fixed Quest export policy.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		UseSelection:   false,
		GlobalScale:    1.0,
		ApplyUnitScale: true,
		AddLeafBones:   false,
		BakeAnim:       false,
	}
}

// ReduceResult is the per-object outcome of one decimation request.
// A failed object never aborts the rest of the batch.
type ReduceResult struct {
	Object    string `json:"object"`
	OK        bool   `json:"ok"`
	Triangles int    `json:"triangles"` // after baking, when OK
	Error     string `json:"error,omitempty"`
}

// Host is the capability surface the optimizer depends on.
type Host interface {
	// ListObjects imports the scene and returns every object in it.
	ListObjects(ctx context.Context, scenePath string) ([]SceneObject, error)

	// Reduce re-imports the scene, attaches and bakes one bounded
	// decimation per request, exports the whole scene to outPath, and
	// returns one result per request in request order.
	Reduce(ctx context.Context, scenePath string, reqs []DecimateRequest,
		dec DecimateOptions, exp ExportOptions, outPath string) ([]ReduceResult, error)
}
