package pipeline

import "github.com/gogpu/gputypes"

// Option configures a ModelPipeline during creation.
//
// Example:
//
//	p, err := pipeline.NewModelPipeline(device, queue, phong.AllFeatures,
//		pipeline.WithColorFormat(gputypes.TextureFormatRGBA8Unorm),
//		pipeline.WithSampleCount(4))
type Option func(*config)

// config holds optional configuration for ModelPipeline creation.
type config struct {
	colorFormat gputypes.TextureFormat
	depthFormat gputypes.TextureFormat
	sampleCount uint32
	cullMode    gputypes.CullMode
	useSPIRV    bool
}

// defaultConfig returns the default pipeline configuration: BGRA8 color,
// depth/stencil attachment, no MSAA, back-face culling.
func defaultConfig() config {
	return config{
		colorFormat: gputypes.TextureFormatBGRA8Unorm,
		depthFormat: gputypes.TextureFormatDepth24PlusStencil8,
		sampleCount: 1,
		cullMode:    gputypes.CullModeBack,
	}
}

// WithColorFormat sets the color attachment format.
func WithColorFormat(format gputypes.TextureFormat) Option {
	return func(c *config) {
		c.colorFormat = format
	}
}

// WithDepthFormat sets the depth attachment format.
// Use gputypes.TextureFormatUndefined for no depth attachment.
func WithDepthFormat(format gputypes.TextureFormat) Option {
	return func(c *config) {
		c.depthFormat = format
	}
}

// WithSampleCount sets the MSAA sample count. Must match the render pass
// the pipeline draws into.
func WithSampleCount(count uint32) Option {
	return func(c *config) {
		c.sampleCount = count
	}
}

// WithCullMode sets the face culling mode.
func WithCullMode(mode gputypes.CullMode) Option {
	return func(c *config) {
		c.cullMode = mode
	}
}

// WithSPIRV precompiles the shader to SPIR-V on the CPU instead of handing
// WGSL source to the backend. Useful for backends without a WGSL frontend.
func WithSPIRV() Option {
	return func(c *config) {
		c.useSPIRV = true
	}
}
