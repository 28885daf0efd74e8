package phong

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"
)

// colorNear reports whether two colors match within 8-bit quantization.
func colorNear(a, b RGBA) bool {
	const tol = 1.5 / 255
	return math.Abs(float64(a.R-b.R)) <= tol &&
		math.Abs(float64(a.G-b.G)) <= tol &&
		math.Abs(float64(a.B-b.B)) <= tol &&
		math.Abs(float64(a.A-b.A)) <= tol
}

func TestTextureTexelRoundTrip(t *testing.T) {
	tex := NewTexture(4, 4)
	want := RGBA{R: 0.2, G: 0.4, B: 0.6, A: 0.8}
	tex.SetTexel(1, 2, want)

	if got := tex.Texel(1, 2); !colorNear(got, want) {
		t.Errorf("texel round trip: got %v, want %v", got, want)
	}
	if got := tex.Texel(0, 0); got != (RGBA{}) {
		t.Errorf("untouched texel should be zero, got %v", got)
	}
	// Out-of-range access is transparent black, not a panic.
	if got := tex.Texel(-1, 99); got != (RGBA{}) {
		t.Errorf("out-of-range texel: got %v", got)
	}
}

func TestTextureFill(t *testing.T) {
	tex := NewTexture(3, 2)
	tex.Fill(RGBA{R: 1, G: 0.5, B: 0, A: 1})

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := tex.Texel(x, y); !colorNear(got, RGBA{R: 1, G: 0.5, B: 0, A: 1}) {
				t.Fatalf("texel (%d,%d): got %v", x, y, got)
			}
		}
	}
}

func TestSamplerAddressModes(t *testing.T) {
	// Two texels: black on the left, white on the right.
	tex := NewTexture(2, 1)
	tex.SetTexel(0, 0, RGBA{A: 1})
	tex.SetTexel(1, 0, White)

	nearest := func(mode gputypes.AddressMode) Sampler {
		return Sampler{
			AddressModeU: mode,
			AddressModeV: mode,
			MagFilter:    gputypes.FilterModeNearest,
		}
	}

	tests := []struct {
		name string
		mode gputypes.AddressMode
		u    float32
		want RGBA // black or white
	}{
		{"clamp in range left", gputypes.AddressModeClampToEdge, 0.25, RGBA{A: 1}},
		{"clamp in range right", gputypes.AddressModeClampToEdge, 0.75, White},
		{"clamp below", gputypes.AddressModeClampToEdge, -0.5, RGBA{A: 1}},
		{"clamp above", gputypes.AddressModeClampToEdge, 1.5, White},
		{"repeat wraps below", gputypes.AddressModeRepeat, -0.25, White},
		{"repeat wraps above", gputypes.AddressModeRepeat, 1.25, RGBA{A: 1}},
		{"mirror reflects above", gputypes.AddressModeMirrorRepeat, 1.25, White},
		{"mirror reflects below", gputypes.AddressModeMirrorRepeat, -0.25, RGBA{A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tex.Sample(nearest(tt.mode), Vec2{X: tt.u, Y: 0.5})
			if !colorNear(got, tt.want) {
				t.Errorf("u=%v: got %v, want %v", tt.u, got, tt.want)
			}
		})
	}
}

func TestSamplerBilinear(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.SetTexel(0, 0, RGBA{A: 1})
	tex.SetTexel(1, 0, White)

	s := DefaultSampler()

	// Halfway between the two texel centers blends to mid gray.
	got := tex.Sample(s, Vec2{X: 0.5, Y: 0.5})
	if math.Abs(float64(got.R-0.5)) > 0.01 {
		t.Errorf("midpoint blend: got %v, want ~0.5", got.R)
	}

	// On a texel center, filtering returns the texel itself.
	got = tex.Sample(s, Vec2{X: 0.25, Y: 0.5})
	if !colorNear(got, RGBA{A: 1}) {
		t.Errorf("texel center: got %v, want black", got)
	}
}

func TestDefaultSampler(t *testing.T) {
	s := DefaultSampler()
	if s.AddressModeU != gputypes.AddressModeClampToEdge ||
		s.AddressModeV != gputypes.AddressModeClampToEdge {
		t.Error("default sampler should clamp to edge")
	}
	if s.MagFilter != gputypes.FilterModeLinear {
		t.Error("default sampler should filter linearly")
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{B: 255, A: 255})

	tex := FromImage(img)
	if tex.Width() != 2 || tex.Height() != 2 {
		t.Fatalf("size: got %dx%d", tex.Width(), tex.Height())
	}
	if got := tex.Texel(0, 0); !colorNear(got, RGBA{R: 1, A: 1}) {
		t.Errorf("texel (0,0): got %v", got)
	}
	if got := tex.Texel(1, 1); !colorNear(got, RGBA{B: 1, A: 1}) {
		t.Errorf("texel (1,1): got %v", got)
	}
}

func TestTexturePNGRoundTrip(t *testing.T) {
	tex := NewTexture(4, 4)
	tex.Fill(RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1})
	tex.SetTexel(2, 1, RGBA{R: 1, A: 1})

	path := filepath.Join(t.TempDir(), "tex.png")
	if err := tex.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	loaded, err := LoadPNG(path)
	if err != nil {
		t.Fatalf("LoadPNG: %v", err)
	}
	if loaded.Width() != 4 || loaded.Height() != 4 {
		t.Fatalf("size after round trip: %dx%d", loaded.Width(), loaded.Height())
	}
	if got := loaded.Texel(2, 1); !colorNear(got, RGBA{R: 1, A: 1}) {
		t.Errorf("texel (2,1): got %v", got)
	}
	if got := loaded.Texel(0, 0); !colorNear(got, RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1}) {
		t.Errorf("texel (0,0): got %v", got)
	}
}

func TestLoadPNGMissingFile(t *testing.T) {
	if _, err := LoadPNG(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
