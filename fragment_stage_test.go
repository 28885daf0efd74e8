package phong

import (
	"errors"
	"math"
	"testing"
)

// flatOutput builds a fragment whose tangent-space frame is trivial: the
// fragment sits at the origin with the light and camera on the +Z axis.
func flatOutput() VertexOutput {
	return VertexOutput{
		TexCoords:            Vec2{X: 0.5, Y: 0.5},
		WorldNormal:          Vec3{Z: 1},
		TangentPosition:      Vec3{},
		TangentLightPosition: Vec3{Z: 2},
		TangentViewPosition:  Vec3{Z: 3},
	}
}

func solidTexture(c RGBA) *Texture {
	tex := NewTexture(2, 2)
	tex.Fill(c)
	return tex
}

// flatNormalTexture encodes the straight-up tangent-space normal (0,0,1).
func flatNormalTexture() *Texture {
	return solidTexture(RGBA{R: 0.5, G: 0.5, B: 1, A: 1})
}

func TestNewFragmentStageValidation(t *testing.T) {
	diffuse := solidTexture(White)
	normal := flatNormalTexture()

	tests := []struct {
		name     string
		features FeatureSet
		bindings SurfaceBindings
		wantErr  error
	}{
		{"none ok", 0, SurfaceBindings{}, nil},
		{"color map ok", FeatureColorMap, SurfaceBindings{Diffuse: diffuse}, nil},
		{"normal map ok", FeatureNormalMap, SurfaceBindings{Normal: normal}, nil},
		{"all ok", AllFeatures, SurfaceBindings{Diffuse: diffuse, Normal: normal}, nil},
		{"missing diffuse", FeatureColorMap, SurfaceBindings{}, ErrMissingColorMap},
		{"missing normal", FeatureNormalMap, SurfaceBindings{}, ErrMissingNormalMap},
		{"unbound diffuse", 0, SurfaceBindings{Diffuse: diffuse}, ErrUnboundFeature},
		{"unbound normal", 0, SurfaceBindings{Normal: normal}, ErrUnboundFeature},
		{"normal without color feature", FeatureColorMap,
			SurfaceBindings{Diffuse: diffuse, Normal: normal}, ErrUnboundFeature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, err := NewFragmentStage(tt.features, tt.bindings)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error: got %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && stage == nil {
				t.Fatal("expected a stage on success")
			}
		})
	}
}

func TestShadeBackFacingIsExactlyAmbient(t *testing.T) {
	stage, err := NewFragmentStage(0, SurfaceBindings{})
	if err != nil {
		t.Fatal(err)
	}

	light := &Light{Position: Vec3{Z: 2}, Color: Vec3{X: 1, Y: 0.5, Z: 0.25}}
	in := flatOutput()
	in.WorldNormal = Vec3{Z: -1} // facing away from both light and view

	got := stage.Shade(light, in)

	// Diffuse and specular clamp to zero; only the ambient term remains.
	want := light.Color.Scale(0.1)
	if got.R != want.X || got.G != want.Y || got.B != want.Z {
		t.Errorf("back-facing shade: got %v, want ambient %v", got, want)
	}
	if got.A != 1 {
		t.Errorf("alpha: got %v, want 1", got.A)
	}
}

func TestShadeZeroLightIsBlack(t *testing.T) {
	stage, err := NewFragmentStage(0, SurfaceBindings{})
	if err != nil {
		t.Fatal(err)
	}

	light := &Light{Position: Vec3{Z: 2}, Color: Vec3{}}
	got := stage.Shade(light, flatOutput())

	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("zero light should shade black, got %v", got)
	}
	if got.A != 1 {
		t.Errorf("alpha passes through unchanged, got %v", got.A)
	}
}

func TestShadeHeadOnLight(t *testing.T) {
	stage, err := NewFragmentStage(0, SurfaceBindings{})
	if err != nil {
		t.Fatal(err)
	}

	light := &Light{Position: Vec3{Z: 2}, Color: Vec3{X: 1, Y: 1, Z: 1}}
	got := stage.Shade(light, flatOutput())

	// Head-on: diffuse dot is 1, half vector equals the normal, so the sum
	// is ambient 0.1 + diffuse 1.0 + specular 1.0.
	approxEq(t, got.R, 2.1, "head-on red")
	approxEq(t, got.G, 2.1, "head-on green")
	approxEq(t, got.B, 2.1, "head-on blue")
}

func TestShadeGrazingLight(t *testing.T) {
	stage, err := NewFragmentStage(0, SurfaceBindings{})
	if err != nil {
		t.Fatal(err)
	}

	// Light in the surface plane: diffuse clamps to zero, the half vector
	// sits 45 degrees off the normal so specular is cos(45)^4 = 0.25.
	in := flatOutput()
	in.TangentLightPosition = Vec3{X: 5}
	light := &Light{Position: Vec3{X: 5}, Color: Vec3{X: 1, Y: 1, Z: 1}}

	got := stage.Shade(light, in)
	approxEq(t, got.R, 0.1+0+0.25, "grazing light")
}

func TestShadeColorMapModulates(t *testing.T) {
	red := RGBA{R: 1, G: 0, B: 0, A: 1}
	stage, err := NewFragmentStage(FeatureColorMap, SurfaceBindings{
		Diffuse:        solidTexture(red),
		DiffuseSampler: DefaultSampler(),
	})
	if err != nil {
		t.Fatal(err)
	}

	light := &Light{Position: Vec3{Z: 2}, Color: Vec3{X: 1, Y: 1, Z: 1}}
	got := stage.Shade(light, flatOutput())

	if got.R <= 0 {
		t.Errorf("lit red channel should be positive, got %v", got.R)
	}
	if got.G != 0 || got.B != 0 {
		t.Errorf("red texture should zero green and blue, got %v", got)
	}
}

func TestShadeAlphaPassthrough(t *testing.T) {
	translucent := RGBA{R: 1, G: 1, B: 1, A: 0.5}
	tex := solidTexture(translucent)
	stage, err := NewFragmentStage(FeatureColorMap, SurfaceBindings{
		Diffuse:        tex,
		DiffuseSampler: DefaultSampler(),
	})
	if err != nil {
		t.Fatal(err)
	}

	in := flatOutput()
	light := &Light{Position: Vec3{Z: 2}, Color: Vec3{X: 10, Y: 10, Z: 10}}
	got := stage.Shade(light, in)

	// Alpha is whatever the texture stores (8-bit quantized), regardless of
	// how bright the lighting is.
	want := tex.Sample(DefaultSampler(), in.TexCoords).A
	if got.A != want {
		t.Errorf("alpha: got %v, want %v", got.A, want)
	}
	if got.R <= 1 {
		t.Errorf("intense light should exceed 1 unclamped, got %v", got.R)
	}
}

func TestShadeFlatNormalMapMatchesVertexNormal(t *testing.T) {
	withMap, err := NewFragmentStage(FeatureNormalMap, SurfaceBindings{
		Normal:        flatNormalTexture(),
		NormalSampler: DefaultSampler(),
	})
	if err != nil {
		t.Fatal(err)
	}
	withoutMap, err := NewFragmentStage(0, SurfaceBindings{})
	if err != nil {
		t.Fatal(err)
	}

	in := flatOutput()
	light := &Light{Position: Vec3{Z: 2}, Color: Vec3{X: 1, Y: 1, Z: 1}}

	a := withMap.Shade(light, in)
	b := withoutMap.Shade(light, in)

	// The flat map decodes to nearly (0,0,1); 8-bit quantization keeps it
	// from being exact.
	const tol = 0.02
	if math.Abs(float64(a.R-b.R)) > tol || math.Abs(float64(a.G-b.G)) > tol ||
		math.Abs(float64(a.B-b.B)) > tol {
		t.Errorf("flat normal map %v should match vertex normal %v", a, b)
	}
}

func TestShadeNearCoincidentLightStaysFinite(t *testing.T) {
	stage, err := NewFragmentStage(0, SurfaceBindings{})
	if err != nil {
		t.Fatal(err)
	}

	in := flatOutput()
	in.TangentLightPosition = Vec3{Z: 1e-6} // almost on top of the fragment
	light := &Light{Position: in.TangentLightPosition, Color: Vec3{X: 1, Y: 1, Z: 1}}

	got := stage.Shade(light, in)
	for _, v := range []float32{got.R, got.G, got.B, got.A} {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("near-coincident light produced non-finite output: %v", got)
		}
	}
}

func TestShadeDeterministic(t *testing.T) {
	stage, err := NewFragmentStage(AllFeatures, SurfaceBindings{
		Diffuse:        solidTexture(RGBA{R: 0.8, G: 0.6, B: 0.4, A: 1}),
		DiffuseSampler: DefaultSampler(),
		Normal:         flatNormalTexture(),
		NormalSampler:  DefaultSampler(),
	})
	if err != nil {
		t.Fatal(err)
	}

	in := flatOutput()
	in.TangentLightPosition = Vec3{X: 0.3, Y: 0.9, Z: 1.7}
	light := &Light{Position: in.TangentLightPosition, Color: Vec3{X: 1, Y: 0.9, Z: 0.8}}

	a := stage.Shade(light, in)
	b := stage.Shade(light, in)
	if a != b {
		t.Error("identical inputs should produce bit-identical outputs")
	}
}

func TestShadeEndToEnd(t *testing.T) {
	// Full path: vertex stage output feeding the fragment stage, camera in
	// front of a quad facing +Z, light above and in front.
	eye := Vec3{Z: 3}
	cam := &Camera{
		ViewPos: eye.Point4(),
		View:    Mat4LookAtRH(eye, Vec3{}, Vec3{Y: 1}),
		Proj:    Mat4PerspectiveRH(float32(math.Pi)/4, 1, 0.1, 100),
	}
	light := &Light{Position: Vec3{Y: 2, Z: 2}, Color: Vec3{X: 1, Y: 1, Z: 1}}

	in := VertexInput{
		Position:  Vec3{},
		TexCoords: Vec2{X: 0.5, Y: 0.5},
		Normal:    Vec3{Z: 1},
		Tangent:   Vec3{X: 1},
		Bitangent: Vec3{Y: 1},
	}
	out := TransformVertex(cam, light, in, identityInstance())

	stage, err := NewFragmentStage(0, SurfaceBindings{})
	if err != nil {
		t.Fatal(err)
	}
	got := stage.Shade(light, out)

	// The surface faces the light from an angle: brighter than ambient
	// alone, bounded by ambient + full diffuse + full specular.
	if got.R <= 0.1 {
		t.Errorf("lit surface should exceed ambient, got %v", got.R)
	}
	if got.R >= 2.1 {
		t.Errorf("shade should stay below the head-on maximum, got %v", got.R)
	}
	if got.A != 1 {
		t.Errorf("alpha: got %v, want 1", got.A)
	}
}
