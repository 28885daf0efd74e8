package phong

// LightUniformSize is the byte size of the packed light uniform.
// Layout: position (vec3<f32> + 4 pad bytes) = 16 bytes +
// color (vec3<f32> + 4 pad bytes) = 16 bytes = 32 bytes.
const LightUniformSize = 32

// Light is the single point light illuminating the pass. Color is an RGB
// intensity; channels are unbounded positive scalars and are never clamped
// by the shading core.
//
// Like Camera, the light uniform is owned by the host: the pipeline only
// reads a stable snapshot of it during a draw.
type Light struct {
	// Position of the light in world space.
	Position Vec3

	// Color is the RGB intensity of the light.
	Color Vec3
}

// Pack serializes the light into the 32-byte uniform layout.
// Must match Light in model.wgsl.
func (l *Light) Pack() []byte {
	buf := make([]byte, LightUniformSize)
	putVec3(buf, 0, l.Position)
	// 4 pad bytes: vec3 rounds up to 16-byte alignment in uniform layout.
	putVec3(buf, 16, l.Color)
	return buf
}
