package phong

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
)

// Texture is a CPU-side RGBA8 pixel buffer sampled by the software fragment
// stage. It is the software counterpart of a bound texture/sampler pair; the
// GPU path uploads the same bytes via package pipeline.
//
// A Texture is read-only during shading. Out-of-range coordinates are
// governed entirely by the Sampler's addressing mode, not by shading logic.
type Texture struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewTexture creates a texture with the given dimensions, initially
// transparent black.
func NewTexture(width, height int) *Texture {
	return &Texture{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the texture in texels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the height of the texture in texels.
func (t *Texture) Height() int {
	return t.height
}

// Data returns the raw pixel data (RGBA format), suitable for GPU upload.
func (t *Texture) Data() []uint8 {
	return t.data
}

// SetTexel sets the color of a single texel.
func (t *Texture) SetTexel(x, y int, c RGBA) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	i := (y*t.width + x) * 4
	t.data[i+0] = uint8(clamp255(c.R * 255))
	t.data[i+1] = uint8(clamp255(c.G * 255))
	t.data[i+2] = uint8(clamp255(c.B * 255))
	t.data[i+3] = uint8(clamp255(c.A * 255))
}

// Texel returns the color of a single texel. Coordinates outside the
// texture return transparent black; samplers wrap coordinates before
// fetching, so this case only arises for direct calls.
func (t *Texture) Texel(x, y int) RGBA {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return RGBA{}
	}
	i := (y*t.width + x) * 4
	return RGBA{
		R: float32(t.data[i+0]) / 255,
		G: float32(t.data[i+1]) / 255,
		B: float32(t.data[i+2]) / 255,
		A: float32(t.data[i+3]) / 255,
	}
}

// Fill sets every texel to c. Handy for solid test textures.
func (t *Texture) Fill(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))
	for i := 0; i < len(t.data); i += 4 {
		t.data[i+0] = r
		t.data[i+1] = g
		t.data[i+2] = b
		t.data[i+3] = a
	}
}

// FromImage creates a texture from any image.Image.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	t := NewTexture(bounds.Dx(), bounds.Dy())
	dst := &image.RGBA{
		Pix:    t.data,
		Stride: t.width * 4,
		Rect:   image.Rect(0, 0, t.width, t.height),
	}
	xdraw.Draw(dst, dst.Rect, img, bounds.Min, xdraw.Src)
	return t
}

// LoadPNG loads a texture from a PNG file.
func LoadPNG(path string) (*Texture, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// SavePNG saves the texture to a PNG file.
func (t *Texture) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	copy(img.Pix, t.data)
	return png.Encode(f, img)
}

// At implements the image.Image interface.
func (t *Texture) At(x, y int) color.Color {
	return t.Texel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.width, t.height)
}

// ColorModel implements the image.Image interface.
func (t *Texture) ColorModel() color.Model {
	return color.NRGBAModel
}

// Sampler configures software texture sampling. It reuses the gputypes
// enums so one value can describe both the software sampler and the
// hal.SamplerDescriptor built from it by package pipeline.
type Sampler struct {
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	MagFilter    gputypes.FilterMode
}

// DefaultSampler returns the sampler configuration used by the model pass:
// clamp-to-edge addressing with bilinear filtering.
func DefaultSampler() Sampler {
	return Sampler{
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
	}
}

// Sample returns the texture color at uv under the sampler's addressing and
// filtering modes. uv is nominally in [0,1]; behavior outside that range is
// whatever the addressing mode dictates.
func (s Sampler) Sample(t *Texture, uv Vec2) RGBA {
	return t.Sample(s, uv)
}

// Sample returns the texture color at uv under the given sampler.
func (t *Texture) Sample(s Sampler, uv Vec2) RGBA {
	if t.width == 0 || t.height == 0 {
		return RGBA{}
	}

	if s.MagFilter == gputypes.FilterModeNearest {
		x := wrapTexel(int(floor32(uv.X*float32(t.width))), t.width, s.AddressModeU)
		y := wrapTexel(int(floor32(uv.Y*float32(t.height))), t.height, s.AddressModeV)
		return t.Texel(x, y)
	}

	// Bilinear: sample the four texels around the texel-center grid point.
	fx := uv.X*float32(t.width) - 0.5
	fy := uv.Y*float32(t.height) - 0.5
	x0 := int(floor32(fx))
	y0 := int(floor32(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := t.Texel(wrapTexel(x0, t.width, s.AddressModeU), wrapTexel(y0, t.height, s.AddressModeV))
	c10 := t.Texel(wrapTexel(x0+1, t.width, s.AddressModeU), wrapTexel(y0, t.height, s.AddressModeV))
	c01 := t.Texel(wrapTexel(x0, t.width, s.AddressModeU), wrapTexel(y0+1, t.height, s.AddressModeV))
	c11 := t.Texel(wrapTexel(x0+1, t.width, s.AddressModeU), wrapTexel(y0+1, t.height, s.AddressModeV))

	lerp := func(a, b RGBA, f float32) RGBA {
		return RGBA{
			R: a.R + (b.R-a.R)*f,
			G: a.G + (b.G-a.G)*f,
			B: a.B + (b.B-a.B)*f,
			A: a.A + (b.A-a.A)*f,
		}
	}
	return lerp(lerp(c00, c10, tx), lerp(c01, c11, tx), ty)
}

// wrapTexel maps an integer texel coordinate into [0, n) per the addressing
// mode. Unknown modes clamp, the safest interpretation.
func wrapTexel(i, n int, mode gputypes.AddressMode) int {
	switch mode {
	case gputypes.AddressModeRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case gputypes.AddressModeMirrorRepeat:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	default: // ClampToEdge
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
}

func floor32(x float32) float32 {
	i := float32(int(x))
	if x < i {
		return i - 1
	}
	return i
}
