package phong

// VertexStride is the byte stride per vertex in the model vertex buffer.
// Layout per vertex:
//
//	position  (vec3<f32>) = 12 bytes  (location 0, offset 0)
//	tex_coords (vec2<f32>) =  8 bytes (location 1, offset 12)
//	normal    (vec3<f32>) = 12 bytes  (location 2, offset 20)
//	tangent   (vec3<f32>) = 12 bytes  (location 3, offset 32)
//	bitangent (vec3<f32>) = 12 bytes  (location 4, offset 44)
//
// Total = 56 bytes per vertex.
const VertexStride = 56

// InstanceStride is the byte stride per instance in the instance buffer.
// Layout per instance:
//
//	model matrix columns 0..3 (4 x vec4<f32>) = 64 bytes (locations 5-8)
//	normal matrix rows 0..2   (3 x vec3<f32>) = 36 bytes (locations 9-11)
//
// Total = 100 bytes per instance.
const InstanceStride = 100

// VertexInput is one vertex of the shared mesh, in object space. The
// tangent-frame vectors need not arrive normalized: the vertex stage
// normalizes them after the normal-matrix transform, where order matters
// under non-uniform scale.
type VertexInput struct {
	Position  Vec3
	TexCoords Vec2
	Normal    Vec3
	Tangent   Vec3
	Bitangent Vec3
}

// Pack serializes the vertex into buf, which must hold VertexStride bytes.
// Must match VertexInput in model.wgsl.
func (v *VertexInput) Pack(buf []byte) {
	off := putVec3(buf, 0, v.Position)
	off = putVec2(buf, off, v.TexCoords)
	off = putVec3(buf, off, v.Normal)
	off = putVec3(buf, off, v.Tangent)
	putVec3(buf, off, v.Bitangent)
}

// InstanceInput is the per-instance transform pair. Both matrices are
// first-class values at this boundary; they decompose into column/row
// attribute slots only inside Pack, the serialization boundary for the
// vertex-fetch interconnect.
//
// NormalMatrix must be the inverse-transpose of the upper-left 3x3 of Model,
// precomputed by the caller. The pipeline never inverts matrices.
type InstanceInput struct {
	Model        Mat4
	NormalMatrix Mat3
}

// Pack serializes the instance into buf, which must hold InstanceStride
// bytes: four model-matrix columns followed by three normal-matrix rows.
// Must match InstanceInput in model.wgsl.
func (in *InstanceInput) Pack(buf []byte) {
	off := 0
	for i := 0; i < 4; i++ {
		off = putVec4(buf, off, in.Model.Col(i))
	}
	for i := 0; i < 3; i++ {
		off = putVec3(buf, off, in.NormalMatrix.Row(i))
	}
}

// PackVertices serializes vertices into a contiguous vertex buffer image.
func PackVertices(vertices []VertexInput) []byte {
	data := make([]byte, len(vertices)*VertexStride)
	for i := range vertices {
		vertices[i].Pack(data[i*VertexStride:])
	}
	return data
}

// PackInstances serializes instances into a contiguous instance buffer image.
func PackInstances(instances []InstanceInput) []byte {
	data := make([]byte, len(instances)*InstanceStride)
	for i := range instances {
		instances[i].Pack(data[i*InstanceStride:])
	}
	return data
}

// VertexOutput is the interpolation bundle handed from the vertex stage to
// the fragment stage. The rasterizer consumes ClipPosition; everything else
// is linearly interpolated across the primitive and arrives per fragment.
//
// The three Tangent* fields are produced by the same orthonormal basis built
// per vertex; the fragment stage relies on that shared frame when it forms
// light and view directions from their differences.
type VertexOutput struct {
	// ClipPosition is the vertex position in clip space.
	ClipPosition Vec4

	// TexCoords is the pass-through texture coordinate.
	TexCoords Vec2

	// WorldNormal is the world-space normal after the normal-matrix
	// transform, kept for the no-normal-map fallback.
	WorldNormal Vec3

	// TangentPosition is the fragment's world position in tangent space.
	TangentPosition Vec3

	// TangentLightPosition is the light position in tangent space.
	TangentLightPosition Vec3

	// TangentViewPosition is the camera position in tangent space.
	TangentViewPosition Vec3
}
