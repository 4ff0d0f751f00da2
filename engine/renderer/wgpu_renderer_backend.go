package renderer

import (
	"fmt"
	"image/color"
	"runtime"
	"sync"
	"unsafe"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount MSAASampleCount

	pipeline      *wgpu.RenderPipeline
	viewLayout    *wgpu.BindGroupLayout
	spriteLayout  *wgpu.BindGroupLayout
	viewBuffer    *wgpu.Buffer
	viewBindGroup *wgpu.BindGroup
	sampler       *wgpu.Sampler

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterSpritePipeline compiles the sprite shader and creates the alpha-blended render pipeline,
	// its bind group layouts, the shared view uniform and the shared sampler.
	// ConfigureSurface must have been called first so the surface format is known.
	//
	// Parameters:
	//   - source: the WGSL source with vs_main and fs_main entry points
	//   - sampler: sampler configuration shared by every sprite
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterSpritePipeline(source string, sampler common.SamplerStagingData) error

	// WriteProjection uploads the 4x4 column-major projection used by every sprite this frame.
	//
	// Parameters:
	//   - proj: 16 floats
	WriteProjection(proj []float32)

	// NewSprite allocates a sprite slot with its uniform buffer. The slot has no texture until UploadTexture.
	//
	// Parameters:
	//   - label: debug label for the GPU objects
	//
	// Returns:
	//   - *spriteSlot: the new slot
	//   - error: an error if the buffer could not be created
	NewSprite(label string) (*spriteSlot, error)

	// UploadTexture replaces the slot's texture with the staging data and rebuilds its bind group.
	//
	// Parameters:
	//   - slot: the slot to update
	//   - data: RGBA8 pixels
	//
	// Returns:
	//   - error: an error if texture or bind group creation fails
	UploadTexture(slot *spriteSlot, data common.TextureStagingData) error

	// WriteSprite uploads the slot's per-draw uniform.
	//
	// Parameters:
	//   - slot: the slot to update
	//   - u: rectangle, tint and flags
	WriteSprite(slot *spriteSlot, u spriteUniform)

	// ReleaseSprite frees every GPU object owned by the slot.
	//
	// Parameters:
	//   - slot: the slot to release
	ReleaseSprite(slot *spriteSlot)

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass cleared to the given color. Must be paired with EndFrame.
	//
	// Parameters:
	//   - clear: the background color
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame(clear color.RGBA) error

	// DrawSprite encodes one sprite draw in the current render pass.
	//
	// Parameters:
	//   - slot: a slot with an uploaded texture
	DrawSprite(slot *spriteSlot)

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// Release frees the pipeline, surface, device and instance.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) wgpuRendererBackend {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Sphere Device",
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
		b.msaaTextureView, b.msaaTexture = nil, nil
	}

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			panic(err)
		}
		b.msaaTexture, b.msaaTextureView = tex, view
	}

	// Sprites are painted back to front, so the pass has no depth attachment.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) RegisterSpritePipeline(source string, sampler common.SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return fmt.Errorf("sprite pipeline: surface not configured")
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Sprite Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return err
	}

	b.viewLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "View Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("view bind group layout: %w", err)
	}

	b.spriteLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Sprite Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sprite bind group layout: %w", err)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Sprite Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.viewLayout, b.spriteLayout},
	})
	if err != nil {
		return err
	}

	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Sprite Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return err
	}

	b.viewBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "View Uniform",
		Size:  16 * 4,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.viewBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "View Bind Group",
		Layout: b.viewLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.viewBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}

	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Sprite Sampler",
		AddressModeU:  common.Coalesce(sampler.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(sampler.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(sampler.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     common.Coalesce(sampler.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(sampler.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(sampler.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(sampler.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(sampler.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(sampler.MaxAnisotropy, 1),
		Compare:       sampler.Compare,
	})
	return err
}

func (b *wgpuRendererBackendImpl) WriteProjection(proj []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue.WriteBuffer(b.viewBuffer, 0, common.SliceToBytes(proj))
}

func (b *wgpuRendererBackendImpl) NewSprite(label string) (*spriteSlot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform",
		Size:  uint64(unsafe.Sizeof(spriteUniform{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return &spriteSlot{label: label, uniform: buf}, nil
}

func (b *wgpuRendererBackendImpl) UploadTexture(slot *spriteSlot, data common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     slot.label + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  slot.label + " Bind Group",
		Layout: b.spriteLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: slot.uniform, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: view},
			{Binding: 2, Sampler: b.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return err
	}

	releaseTexture(slot)
	slot.texture, slot.view, slot.bindGroup = tex, view, bindGroup
	return nil
}

func releaseTexture(slot *spriteSlot) {
	if slot.bindGroup != nil {
		slot.bindGroup.Release()
		slot.bindGroup = nil
	}
	if slot.view != nil {
		slot.view.Release()
		slot.view = nil
	}
	if slot.texture != nil {
		slot.texture.Release()
		slot.texture = nil
	}
}

func (b *wgpuRendererBackendImpl) WriteSprite(slot *spriteSlot, u spriteUniform) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue.WriteBuffer(slot.uniform, 0, common.StructToBytes(&u))
}

func (b *wgpuRendererBackendImpl) ReleaseSprite(slot *spriteSlot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	releaseTexture(slot)
	if slot.uniform != nil {
		slot.uniform.Release()
		slot.uniform = nil
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame(clear color.RGBA) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A surface texture still held means the previous frame was never presented.
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{
		R: float64(clear.R) / 255,
		G: float64(clear.G) / 255,
		B: float64(clear.B) / 255,
		A: float64(clear.A) / 255,
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetPipeline(b.pipeline)
	pass.SetBindGroup(0, b.viewBindGroup, nil)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawSprite(slot *spriteSlot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || slot.bindGroup == nil {
		return
	}
	b.framePass.SetBindGroup(1, slot.bindGroup, nil)
	b.framePass.Draw(6, 1, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sampler != nil {
		b.sampler.Release()
	}
	if b.viewBindGroup != nil {
		b.viewBindGroup.Release()
	}
	if b.viewBuffer != nil {
		b.viewBuffer.Release()
	}
	if b.pipeline != nil {
		b.pipeline.Release()
	}
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
	}
	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}
