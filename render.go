package cursorfx

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// frameUniform matches the WGSL FrameUniform layout.
type frameUniform struct {
	ScreenSize [2]float32
	TotalTime  float32
	pad        float32
}

// OverlayRenderer is the wgpu-backed RenderDevice. It owns the overlay
// pipeline, the frame uniform and the growable instance buffer; the sync
// stage feeds it compacted records and a draw call per frame.
type OverlayRenderer struct {
	gpu *GpuState
	log Logger

	pipeline      *wgpu.RenderPipeline
	bindGroup     *wgpu.BindGroup
	uniformBuffer *wgpu.Buffer

	instanceBuffer *wgpu.Buffer
	instanceCap    int

	// Active render pass, valid only while renderSystem holds one open.
	pass *wgpu.RenderPassEncoder
}

func newOverlayRenderer(gpu *GpuState, petalSprite *wgpu.TextureView, log Logger) *OverlayRenderer {
	device := gpu.device

	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "OverlayShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: OverlayWGSL},
	})
	if err != nil {
		panic(err)
	}
	defer shaderModule.Release()

	uniformBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "OverlayFrameUniform",
		Size:  uint64(unsafe.Sizeof(frameUniform{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}

	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		panic(err)
	}

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "OverlayBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(unsafe.Sizeof(frameUniform{})),
				},
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
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		panic(err)
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "OverlayBindGroup",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniformBuffer, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: petalSprite},
			{Binding: 2, Sampler: sampler},
		},
	})
	if err != nil {
		panic(err)
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		panic(err)
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "OverlayPipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: InstanceStride,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 32, ShaderLocation: 3},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 40, ShaderLocation: 4},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 56, ShaderLocation: 5},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    gpu.surfaceConfig.Format,
					WriteMask: wgpu.ColorWriteMaskAll,
					// Shader outputs premultiplied alpha.
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
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
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		panic(err)
	}

	return &OverlayRenderer{
		gpu:           gpu,
		log:           log,
		pipeline:      pipeline,
		bindGroup:     bindGroup,
		uniformBuffer: uniformBuffer,
	}
}

func (r *OverlayRenderer) EnsureInstanceCapacity(capacity int) {
	if r.instanceBuffer != nil && r.instanceCap >= capacity {
		return
	}
	if r.instanceBuffer != nil {
		r.instanceBuffer.Release()
	}
	r.instanceCap = capacity
	buf, err := r.gpu.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "OverlayInstanceBuffer",
		Size:  uint64(capacity) * InstanceStride,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	r.instanceBuffer = buf
}

// UploadInstances writes only the live prefix; slots past len(records) keep
// whatever bytes they held, which is fine because the draw never reaches
// them.
func (r *OverlayRenderer) UploadInstances(records []InstanceRecord) {
	if len(records) == 0 {
		return
	}
	r.EnsureInstanceCapacity(len(records))
	sizeBytes := len(records) * InstanceStride
	r.gpu.queue.WriteBuffer(r.instanceBuffer, 0,
		unsafe.Slice((*byte)(unsafe.Pointer(&records[0])), sizeBytes))
}

func (r *OverlayRenderer) DrawInstanced(vertexCountPerInstance, instanceCount uint32) {
	if r.pass == nil {
		return
	}
	r.pass.Draw(vertexCountPerInstance, instanceCount, 0, 0)
}

func (r *OverlayRenderer) writeFrameUniform(ws *WindowState, tm *Time) {
	u := frameUniform{
		ScreenSize: [2]float32{float32(ws.Width), float32(ws.Height)},
		TotalTime:  tm.Total,
	}
	r.gpu.queue.WriteBuffer(r.uniformBuffer, 0,
		unsafe.Slice((*byte)(unsafe.Pointer(&u)), int(unsafe.Sizeof(u))))
}

func (r *OverlayRenderer) reconfigureIfResized(ws *WindowState) {
	cfg := r.gpu.surfaceConfig
	if int(cfg.Width) == ws.Width && int(cfg.Height) == ws.Height {
		return
	}
	if ws.Width == 0 || ws.Height == 0 {
		return
	}
	cfg.Width = uint32(ws.Width)
	cfg.Height = uint32(ws.Height)
	r.gpu.surface.Configure(r.gpu.adapter, r.gpu.device, cfg)
}

type RenderModule struct{}

func (mod RenderModule) Install(app *App, cmd *Commands) {
	gpu := Resource[GpuState](app)
	cfgState := Resource[ConfigState](app)
	log := app.Logger()

	sprite := petalSpriteRGBA(cfgState.Current().Petal, log)
	spriteView := createTextureFromImage(gpu, "PetalSprite", sprite)

	renderer := newOverlayRenderer(gpu, spriteView, log)
	stage := NewSyncStage(renderer)
	cmd.AddResources(renderer, stage)

	app.UseSystem(
		System(renderSystem).InStage(Render),
	)
}

func renderSystem(ws *WindowState, tm *Time, r *OverlayRenderer, stage *SyncStage) {
	r.reconfigureIfResized(ws)
	r.writeFrameUniform(ws, tm)

	gpu := r.gpu
	nextTexture, err := gpu.surface.GetCurrentTexture()
	if err != nil {
		r.log.Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		r.log.Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		r.log.Errorf("CreateCommandEncoder failed: %v", err)
		return
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 0}, // transparent overlay
		}},
	})
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.bindGroup, nil)
	if stage.InstanceCount() > 0 {
		pass.SetVertexBuffer(0, r.instanceBuffer, 0, r.instanceBuffer.GetSize())
		r.pass = pass
		stage.Draw()
		r.pass = nil
	}
	if err := pass.End(); err != nil {
		r.log.Errorf("render pass End failed: %v", err)
	}

	cmdBuf, err := encoder.Finish(nil)
	if err != nil {
		r.log.Errorf("encoder Finish failed: %v", err)
		return
	}
	gpu.queue.Submit(cmdBuf)
	gpu.surface.Present()
}
