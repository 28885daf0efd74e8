package phong

import "errors"

// Fragment stage constants. Both are fixed by the shading model and mirrored
// verbatim in model.wgsl; see DESIGN.md for why they are not configurable.
const (
	// ambientStrength scales the light color into the ambient term.
	ambientStrength = 0.1

	// specularExponent is the Blinn-Phong shininess exponent, a low value
	// giving a soft, wide highlight.
	specularExponent = 4
)

// Binding contract errors, surfaced when a fragment stage is built with a
// resource set inconsistent with its feature set. This is the software
// analogue of pipeline-creation failure on the GPU host; per-invocation
// shading itself has no fallible paths.
var (
	// ErrMissingColorMap is returned when FeatureColorMap is set but no
	// diffuse texture is bound.
	ErrMissingColorMap = errors.New("phong: color map feature set but no diffuse texture bound")

	// ErrMissingNormalMap is returned when FeatureNormalMap is set but no
	// normal-map texture is bound.
	ErrMissingNormalMap = errors.New("phong: normal map feature set but no normal texture bound")

	// ErrUnboundFeature is returned when a texture is bound without its
	// matching feature, which would be silently dead on the GPU host.
	ErrUnboundFeature = errors.New("phong: texture bound without matching feature")
)

// ColorSource supplies the fragment's diffuse color. Implementations are
// selected when the stage is built, one per compiled feature combination.
type ColorSource interface {
	// SampleColor returns the diffuse color at uv. Alpha is carried through
	// to the final output untouched.
	SampleColor(uv Vec2) RGBA
}

// NormalSource supplies the fragment's lighting normal. Implementations are
// selected when the stage is built; per-invocation code never branches on
// which variant is present.
type NormalSource interface {
	// SurfaceNormal returns the normal used by the lighting equations.
	SurfaceNormal(in VertexOutput) Vec3
}

// TextureColor samples a bound diffuse texture. It is the ColorSource for
// pipelines compiled with FeatureColorMap.
type TextureColor struct {
	Texture *Texture
	Sampler Sampler
}

// SampleColor implements ColorSource.
func (t TextureColor) SampleColor(uv Vec2) RGBA {
	return t.Texture.Sample(t.Sampler, uv)
}

// WhiteColor is the ColorSource for pipelines compiled without
// FeatureColorMap: a constant opaque white, leaving the lighting terms
// unscaled.
type WhiteColor struct{}

// SampleColor implements ColorSource.
func (WhiteColor) SampleColor(Vec2) RGBA {
	return White
}

// TextureNormal samples a bound tangent-space normal map and decodes the
// [0,1]-encoded texel into a direction via xyz*2-1. It is the NormalSource
// for pipelines compiled with FeatureNormalMap.
type TextureNormal struct {
	Texture *Texture
	Sampler Sampler
}

// SurfaceNormal implements NormalSource.
func (t TextureNormal) SurfaceNormal(in VertexOutput) Vec3 {
	s := t.Texture.Sample(t.Sampler, in.TexCoords)
	return Vec3{X: s.R*2 - 1, Y: s.G*2 - 1, Z: s.B*2 - 1}
}

// VertexNormal is the NormalSource for pipelines compiled without
// FeatureNormalMap: the interpolated world-space vertex normal is reused as
// the lighting normal directly (alpha, were it carried, is forced to 1).
// No tangent-space decode applies since no tangent-encoded sample exists.
type VertexNormal struct{}

// SurfaceNormal implements NormalSource.
func (VertexNormal) SurfaceNormal(in VertexOutput) Vec3 {
	return in.WorldNormal
}

// SurfaceBindings is the set of optional textures bound to a fragment
// stage. Which fields must be non-nil is dictated by the feature set the
// stage is built with; a mismatch in either direction fails construction.
type SurfaceBindings struct {
	Diffuse        *Texture
	DiffuseSampler Sampler

	Normal        *Texture
	NormalSampler Sampler
}

// FragmentStage is the fragment lighting stage for one compiled feature
// combination. It holds the stage's two capabilities, chosen once at build
// time; Shade itself is a pure function of its inputs.
type FragmentStage struct {
	color  ColorSource
	normal NormalSource
}

// NewFragmentStage builds the stage variant for the given features,
// validating the bindings against them.
func NewFragmentStage(features FeatureSet, bindings SurfaceBindings) (*FragmentStage, error) {
	s := &FragmentStage{
		color:  ColorSource(WhiteColor{}),
		normal: NormalSource(VertexNormal{}),
	}

	switch {
	case features.Has(FeatureColorMap) && bindings.Diffuse == nil:
		return nil, ErrMissingColorMap
	case !features.Has(FeatureColorMap) && bindings.Diffuse != nil:
		return nil, ErrUnboundFeature
	case features.Has(FeatureColorMap):
		s.color = TextureColor{Texture: bindings.Diffuse, Sampler: bindings.DiffuseSampler}
	}

	switch {
	case features.Has(FeatureNormalMap) && bindings.Normal == nil:
		return nil, ErrMissingNormalMap
	case !features.Has(FeatureNormalMap) && bindings.Normal != nil:
		return nil, ErrUnboundFeature
	case features.Has(FeatureNormalMap):
		s.normal = TextureNormal{Texture: bindings.Normal, Sampler: bindings.NormalSampler}
	}

	return s, nil
}

// Shade evaluates Blinn-Phong lighting for one interpolated VertexOutput
// and returns the final RGBA color. Pure function: identical inputs give
// bit-identical output.
//
// The half vector replaces the geometric reflection vector in the specular
// term (Blinn's optimization). Diffuse and specular dot products clamp at
// zero, so surfaces facing away from the light receive only ambient.
func (s *FragmentStage) Shade(light *Light, in VertexOutput) RGBA {
	objectColor := s.color.SampleColor(in.TexCoords)
	normal := s.normal.SurfaceNormal(in)

	ambient := light.Color.Scale(ambientStrength)

	lightDir := in.TangentLightPosition.Sub(in.TangentPosition).Normalize()
	viewDir := in.TangentViewPosition.Sub(in.TangentPosition).Normalize()
	halfDir := lightDir.Add(viewDir).Normalize()

	diffuse := light.Color.Scale(max32(normal.Dot(lightDir), 0))
	specular := light.Color.Scale(pow32(max32(normal.Dot(halfDir), 0), specularExponent))

	result := ambient.Add(diffuse).Add(specular).Mul(objectColor.Vec3())
	return RGBA{R: result.X, G: result.Y, B: result.Z, A: objectColor.A}
}
