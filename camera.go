package phong

// CameraUniformSize is the byte size of the packed camera uniform.
// Layout: view_pos (vec4<f32>) = 16 bytes + view (mat4x4<f32>) = 64 bytes +
// proj (mat4x4<f32>) = 64 bytes = 144 bytes.
const CameraUniformSize = 144

// Camera holds the view uniforms consumed by both stages. The pipeline reads
// it and never writes it; populating and uploading it each frame is the host
// application's job.
//
// View and Proj are kept separate on purpose: the composition order
// clip = proj * view * world is fixed inside the vertex stage, and callers
// must not pre-multiply them.
type Camera struct {
	// ViewPos is the camera position in world space as a homogeneous point
	// (w = 1). The fourth component exists for uniform alignment and is not
	// read by the lighting math.
	ViewPos Vec4

	// View transforms world space into view space.
	View Mat4

	// Proj transforms view space into clip space.
	Proj Mat4
}

// ViewProj returns proj * view, the fixed composition applied to world-space
// positions.
func (c *Camera) ViewProj() Mat4 {
	return c.Proj.Mul(c.View)
}

// Pack serializes the camera into the 144-byte uniform layout.
// Must match Camera in model.wgsl.
func (c *Camera) Pack() []byte {
	buf := make([]byte, CameraUniformSize)
	off := putVec4(buf, 0, c.ViewPos)
	off = putMat4(buf, off, c.View)
	putMat4(buf, off, c.Proj)
	return buf
}
