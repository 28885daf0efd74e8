// Package pipeline builds the GPU render pipeline for the model pass on
// top of gogpu/wgpu HAL.
//
// Each feature combination is a distinct pipeline: the shader source is
// specialized by package shader, the surface bind group layout carries only
// the bindings that combination uses, and nothing is decided per draw.
// ModelPipeline owns the shader, layouts, sampler and the camera/light
// uniform buffers; vertex, instance and texture resources are created
// through its upload helpers and owned by the caller.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/phong"
	"github.com/gogpu/phong/shader"
)

// Pipeline construction errors.
var (
	// ErrNilDevice is returned when creating a pipeline without a device.
	ErrNilDevice = errors.New("pipeline: device is nil")

	// ErrNilQueue is returned when creating a pipeline without a queue.
	ErrNilQueue = errors.New("pipeline: queue is nil")
)

// ModelPipeline is the compiled model pass for one feature combination.
//
// Bind group contract (must match model.wgsl):
//
//	Group 0: surface textures, entries per feature set (see layout.go)
//	Group 1, binding 0: camera uniform, 144 bytes
//	Group 2, binding 0: light uniform, 32 bytes
type ModelPipeline struct {
	device   hal.Device
	queue    hal.Queue
	features phong.FeatureSet
	cfg      config

	shader        hal.ShaderModule
	surfaceLayout hal.BindGroupLayout
	cameraLayout  hal.BindGroupLayout
	lightLayout   hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	sampler hal.Sampler

	cameraBuf  hal.Buffer
	lightBuf   hal.Buffer
	cameraBind hal.BindGroup
	lightBind  hal.BindGroup
}

// NewModelPipeline compiles the shader variant for features and creates the
// render pipeline plus the camera and light uniform resources.
func NewModelPipeline(device hal.Device, queue hal.Queue, features phong.FeatureSet, opts ...Option) (*ModelPipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &ModelPipeline{
		device:   device,
		queue:    queue,
		features: features,
		cfg:      cfg,
	}
	if err := p.create(); err != nil {
		p.Destroy()
		return nil, err
	}

	phong.Logger().Debug("model pipeline created",
		"features", features.String(),
		"color_format", cfg.colorFormat,
		"sample_count", cfg.sampleCount)
	return p, nil
}

// Features returns the feature set the pipeline was compiled with.
func (p *ModelPipeline) Features() phong.FeatureSet {
	return p.features
}

// Raw returns the underlying HAL render pipeline.
func (p *ModelPipeline) Raw() hal.RenderPipeline {
	return p.pipeline
}

func (p *ModelPipeline) create() error {
	source, err := shader.Compose(shader.ModelSource(), p.features.Defs())
	if err != nil {
		return err
	}

	shaderSource := hal.ShaderSource{WGSL: source}
	if p.cfg.useSPIRV {
		words, err := shader.ToSPIRV(source)
		if err != nil {
			return err
		}
		shaderSource = hal.ShaderSource{SPIRV: words}
	}

	module, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "model_shader_" + p.features.String(),
		Source: shaderSource,
	})
	if err != nil {
		return fmt.Errorf("compile model shader: %w", err)
	}
	p.shader = module

	surfaceLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "model_surface_layout",
		Entries: surfaceLayoutEntries(p.features),
	})
	if err != nil {
		return fmt.Errorf("create surface layout: %w", err)
	}
	p.surfaceLayout = surfaceLayout

	cameraLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "model_camera_layout",
		Entries: uniformLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("create camera layout: %w", err)
	}
	p.cameraLayout = cameraLayout

	lightLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "model_light_layout",
		Entries: uniformLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("create light layout: %w", err)
	}
	p.lightLayout = lightLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "model_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.surfaceLayout, p.cameraLayout, p.lightLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "model_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create model sampler: %w", err)
	}
	p.sampler = sampler

	desc := &hal.RenderPipelineDescriptor{
		Label:  "model_pipeline_" + p.features.String(),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    modelVertexLayouts(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.cfg.colorFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  p.cfg.cullMode,
		},
		Multisample: gputypes.MultisampleState{
			Count: p.cfg.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	}
	if p.cfg.depthFormat != gputypes.TextureFormatUndefined {
		desc.DepthStencil = &hal.DepthStencilState{
			Format:            p.cfg.depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilReadMask:  0x00,
			StencilWriteMask: 0x00,
		}
	}

	pipeline, err := p.device.CreateRenderPipeline(desc)
	if err != nil {
		return fmt.Errorf("create model pipeline: %w", err)
	}
	p.pipeline = pipeline

	return p.createUniforms()
}

// createUniforms creates the camera and light uniform buffers and their
// per-group bind groups. Both are written via WriteCamera and WriteLight.
func (p *ModelPipeline) createUniforms() error {
	cameraBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "model_camera_uniform",
		Size:  phong.CameraUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create camera buffer: %w", err)
	}
	p.cameraBuf = cameraBuf

	lightBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "model_light_uniform",
		Size:  phong.LightUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create light buffer: %w", err)
	}
	p.lightBuf = lightBuf

	cameraBind, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "model_camera_bind",
		Layout: p.cameraLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: cameraBuf.NativeHandle(), Offset: 0, Size: phong.CameraUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create camera bind group: %w", err)
	}
	p.cameraBind = cameraBind

	lightBind, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "model_light_bind",
		Layout: p.lightLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: lightBuf.NativeHandle(), Offset: 0, Size: phong.LightUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create light bind group: %w", err)
	}
	p.lightBind = lightBind

	return nil
}

// WriteCamera uploads the camera uniform.
func (p *ModelPipeline) WriteCamera(cam *phong.Camera) {
	p.queue.WriteBuffer(p.cameraBuf, 0, cam.Pack())
}

// WriteLight uploads the light uniform.
func (p *ModelPipeline) WriteLight(light *phong.Light) {
	p.queue.WriteBuffer(p.lightBuf, 0, light.Pack())
}

// UploadVertices creates a vertex buffer and uploads the packed vertices.
// The caller owns the returned buffer.
func (p *ModelPipeline) UploadVertices(label string, verts []phong.VertexInput) (hal.Buffer, error) {
	return p.createAndUploadBuffer(label, phong.PackVertices(verts),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
}

// UploadInstances creates an instance buffer and uploads the packed
// instances. The caller owns the returned buffer.
func (p *ModelPipeline) UploadInstances(label string, instances []phong.InstanceInput) (hal.Buffer, error) {
	return p.createAndUploadBuffer(label, phong.PackInstances(instances),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (p *ModelPipeline) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	p.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// UploadTexture creates an RGBA8 GPU texture from a software texture,
// uploads its pixels and returns the texture and a view for binding.
// The caller owns both.
func (p *ModelPipeline) UploadTexture(label string, tex *phong.Texture) (hal.Texture, hal.TextureView, error) {
	width := uint32(tex.Width())   //nolint:gosec // texture sizes fit uint32
	height := uint32(tex.Height()) //nolint:gosec // texture sizes fit uint32

	halTex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create texture %s: %w", label, err)
	}

	view, err := p.device.CreateTextureView(halTex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.device.DestroyTexture(halTex)
		return nil, nil, fmt.Errorf("create texture view %s: %w", label, err)
	}

	p.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  halTex,
			MipLevel: 0,
		},
		tex.Data(),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)

	return halTex, view, nil
}

// CreateSurfaceBindGroup builds the group 0 bind group from the texture
// views the feature set requires. Views for features the pipeline was not
// compiled with must be nil, matching the fragment stage contract.
func (p *ModelPipeline) CreateSurfaceBindGroup(diffuse, normal hal.TextureView) (hal.BindGroup, error) {
	var entries []gputypes.BindGroupEntry

	switch {
	case p.features.Has(phong.FeatureColorMap) && diffuse == nil:
		return nil, phong.ErrMissingColorMap
	case !p.features.Has(phong.FeatureColorMap) && diffuse != nil:
		return nil, phong.ErrUnboundFeature
	case p.features.Has(phong.FeatureColorMap):
		entries = append(entries,
			gputypes.BindGroupEntry{Binding: 0, Resource: gputypes.TextureViewBinding{
				TextureView: diffuse.NativeHandle(),
			}},
			gputypes.BindGroupEntry{Binding: 1, Resource: gputypes.SamplerBinding{
				Sampler: p.sampler.NativeHandle(),
			}},
		)
	}

	switch {
	case p.features.Has(phong.FeatureNormalMap) && normal == nil:
		return nil, phong.ErrMissingNormalMap
	case !p.features.Has(phong.FeatureNormalMap) && normal != nil:
		return nil, phong.ErrUnboundFeature
	case p.features.Has(phong.FeatureNormalMap):
		entries = append(entries,
			gputypes.BindGroupEntry{Binding: 2, Resource: gputypes.TextureViewBinding{
				TextureView: normal.NativeHandle(),
			}},
			gputypes.BindGroupEntry{Binding: 3, Resource: gputypes.SamplerBinding{
				Sampler: p.sampler.NativeHandle(),
			}},
		)
	}

	bind, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "model_surface_bind",
		Layout:  p.surfaceLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create surface bind group: %w", err)
	}
	return bind, nil
}

// RecordDraws records the model pass draw into an existing render pass:
// pipeline, the three bind groups, both vertex streams, one instanced draw.
func (p *ModelPipeline) RecordDraws(rp hal.RenderPassEncoder, surface hal.BindGroup, vertBuf, instBuf hal.Buffer, vertexCount, instanceCount uint32) {
	if vertexCount == 0 || instanceCount == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(groupSurface, surface, nil)
	rp.SetBindGroup(groupCamera, p.cameraBind, nil)
	rp.SetBindGroup(groupLight, p.lightBind, nil)
	rp.SetVertexBuffer(0, vertBuf, 0)
	rp.SetVertexBuffer(1, instBuf, 0)
	rp.Draw(vertexCount, instanceCount, 0, 0)
}

// Destroy releases all GPU resources held by the pipeline, in reverse
// creation order. Safe to call multiple times.
func (p *ModelPipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.lightBind != nil {
		p.device.DestroyBindGroup(p.lightBind)
		p.lightBind = nil
	}
	if p.cameraBind != nil {
		p.device.DestroyBindGroup(p.cameraBind)
		p.cameraBind = nil
	}
	if p.lightBuf != nil {
		p.device.DestroyBuffer(p.lightBuf)
		p.lightBuf = nil
	}
	if p.cameraBuf != nil {
		p.device.DestroyBuffer(p.cameraBuf)
		p.cameraBuf = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.lightLayout != nil {
		p.device.DestroyBindGroupLayout(p.lightLayout)
		p.lightLayout = nil
	}
	if p.cameraLayout != nil {
		p.device.DestroyBindGroupLayout(p.cameraLayout)
		p.cameraLayout = nil
	}
	if p.surfaceLayout != nil {
		p.device.DestroyBindGroupLayout(p.surfaceLayout)
		p.surfaceLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
