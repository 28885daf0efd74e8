package phong

// The rasterizer sits between the two stages and is not part of this core,
// but its interpolation contract is: every VertexOutput field except the
// clip position reaches the fragment stage linearly interpolated across the
// primitive. These helpers reproduce that contract for software evaluation
// and tests.

// LerpOutput returns the linear blend of two vertex outputs at parameter t.
func LerpOutput(a, b VertexOutput, t float32) VertexOutput {
	return VertexOutput{
		ClipPosition:         a.ClipPosition.Lerp(b.ClipPosition, t),
		TexCoords:            a.TexCoords.Lerp(b.TexCoords, t),
		WorldNormal:          a.WorldNormal.Lerp(b.WorldNormal, t),
		TangentPosition:      a.TangentPosition.Lerp(b.TangentPosition, t),
		TangentLightPosition: a.TangentLightPosition.Lerp(b.TangentLightPosition, t),
		TangentViewPosition:  a.TangentViewPosition.Lerp(b.TangentViewPosition, t),
	}
}

// InterpolateOutput blends three vertex outputs with barycentric weights.
// Weights are expected to sum to 1; no renormalization is applied.
func InterpolateOutput(a, b, c VertexOutput, wa, wb, wc float32) VertexOutput {
	blend3 := func(x, y, z Vec3) Vec3 {
		return x.Scale(wa).Add(y.Scale(wb)).Add(z.Scale(wc))
	}
	blend4 := func(x, y, z Vec4) Vec4 {
		return x.Scale(wa).Add(y.Scale(wb)).Add(z.Scale(wc))
	}
	return VertexOutput{
		ClipPosition: blend4(a.ClipPosition, b.ClipPosition, c.ClipPosition),
		TexCoords: Vec2{
			X: a.TexCoords.X*wa + b.TexCoords.X*wb + c.TexCoords.X*wc,
			Y: a.TexCoords.Y*wa + b.TexCoords.Y*wb + c.TexCoords.Y*wc,
		},
		WorldNormal:          blend3(a.WorldNormal, b.WorldNormal, c.WorldNormal),
		TangentPosition:      blend3(a.TangentPosition, b.TangentPosition, c.TangentPosition),
		TangentLightPosition: blend3(a.TangentLightPosition, b.TangentLightPosition, c.TangentLightPosition),
		TangentViewPosition:  blend3(a.TangentViewPosition, b.TangentViewPosition, c.TangentViewPosition),
	}
}
