package pipeline

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/phong"
)

// Bind group indices of the model pass. The surface group exists for every
// variant; its entries depend on the feature set.
const (
	groupSurface = 0
	groupCamera  = 1
	groupLight   = 2
)

// surfaceLayoutEntries returns the group 0 entries for a feature set:
//
//	Binding 0: diffuse texture (fragment), iff FeatureColorMap
//	Binding 1: diffuse sampler (fragment), iff FeatureColorMap
//	Binding 2: normal texture (fragment), iff FeatureNormalMap
//	Binding 3: normal sampler (fragment), iff FeatureNormalMap
func surfaceLayoutEntries(features phong.FeatureSet) []gputypes.BindGroupLayoutEntry {
	var entries []gputypes.BindGroupLayoutEntry
	if features.Has(phong.FeatureColorMap) {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}
	if features.Has(phong.FeatureNormalMap) {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    3,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}
	return entries
}

// uniformLayoutEntries returns the single-binding layout shared by the
// camera and light groups.
func uniformLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
	}
}

// modelVertexLayouts returns the two vertex buffer layouts of the model
// pass. Matches VertexInput and InstanceInput in model.wgsl:
//
//	Buffer 0, per vertex, stride 56:
//	  location 0: position (vec3<f32>), offset 0
//	  location 1: tex_coords (vec2<f32>), offset 12
//	  location 2: normal (vec3<f32>), offset 20
//	  location 3: tangent (vec3<f32>), offset 32
//	  location 4: bitangent (vec3<f32>), offset 44
//
//	Buffer 1, per instance, stride 100:
//	  locations 5-8: model matrix columns (vec4<f32>), offsets 0/16/32/48
//	  locations 9-11: normal matrix rows (vec3<f32>), offsets 64/76/88
func modelVertexLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: phong.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // tex_coords
				{Format: gputypes.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2}, // normal
				{Format: gputypes.VertexFormatFloat32x3, Offset: 32, ShaderLocation: 3}, // tangent
				{Format: gputypes.VertexFormatFloat32x3, Offset: 44, ShaderLocation: 4}, // bitangent
			},
		},
		{
			ArrayStride: phong.InstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 6},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 7},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 8},
				{Format: gputypes.VertexFormatFloat32x3, Offset: 64, ShaderLocation: 9},
				{Format: gputypes.VertexFormatFloat32x3, Offset: 76, ShaderLocation: 10},
				{Format: gputypes.VertexFormatFloat32x3, Offset: 88, ShaderLocation: 11},
			},
		},
	}
}
