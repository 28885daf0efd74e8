package phong

import "strings"

// FeatureSet selects the optional texture inputs compiled into a pipeline.
// Each combination is a distinct shader variant and a distinct pipeline;
// features are never inspected at per-invocation runtime, so a compiled
// variant can never touch an unbound resource.
type FeatureSet uint32

const (
	// FeatureColorMap binds a diffuse texture and sampler at
	// group 0, bindings 0-1. Without it the diffuse color is opaque white.
	FeatureColorMap FeatureSet = 1 << iota

	// FeatureNormalMap binds a tangent-space normal map and sampler at
	// group 0, bindings 2-3. Without it lighting uses the interpolated
	// world-space vertex normal.
	FeatureNormalMap
)

// AllFeatures is the full feature set.
const AllFeatures = FeatureColorMap | FeatureNormalMap

// Shader def names resolved by package shader's preprocessor.
const (
	defColorMap  = "COLOR_MAP"
	defNormalMap = "NORMAL_MAP"
)

// Has reports whether all features in f2 are present in f.
func (f FeatureSet) Has(f2 FeatureSet) bool {
	return f&f2 == f2
}

// Defs returns the shader def names for the set, in declaration order.
// Package shader resolves #ifdef blocks in model.wgsl against these.
func (f FeatureSet) Defs() []string {
	var defs []string
	if f.Has(FeatureColorMap) {
		defs = append(defs, defColorMap)
	}
	if f.Has(FeatureNormalMap) {
		defs = append(defs, defNormalMap)
	}
	return defs
}

// String returns a readable representation such as "color_map|normal_map".
func (f FeatureSet) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f.Has(FeatureColorMap) {
		parts = append(parts, "color_map")
	}
	if f.Has(FeatureNormalMap) {
		parts = append(parts, "normal_map")
	}
	if extra := f &^ AllFeatures; extra != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}
