// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/ggmask"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Material is a base material bound to a render pipeline whose
// depth/stencil state implements one ggmask.StencilState.
//
// Materials are created by Factory through a ggmask.MaterialCache and are
// valid until the cache releases their last reference.
type Material struct {
	base     ggmask.Material
	state    ggmask.StencilState
	pipeline hal.RenderPipeline
}

// Stencil returns the stencil state the pipeline was built with.
func (m *Material) Stencil() ggmask.StencilState { return m.state }

// BaseMaterial returns the material this variant was derived from.
func (m *Material) BaseMaterial() ggmask.Material { return m.base }

// Pipeline returns the render pipeline. It is nil once destroyed.
func (m *Material) Pipeline() hal.RenderPipeline { return m.pipeline }

// Factory is a ggmask.MaterialFactory creating one render pipeline per
// stencil material. It shares a single shader module, bind group layout and
// pipeline layout across all pipelines.
//
// Factory is safe for concurrent use.
type Factory struct {
	mu     sync.Mutex
	device hal.Device
	opts   factoryOptions

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout

	live   map[*Material]struct{}
	closed bool
}

// NewFactory compiles the mask shader and creates the layouts shared by all
// pipelines on device.
func NewFactory(device hal.Device, opts ...FactoryOption) (*Factory, error) {
	if device == nil {
		return nil, fmt.Errorf("new mask factory: %w", ErrNilDevice)
	}
	o := defaultFactoryOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	f := &Factory{
		device: device,
		opts:   o,
		live:   make(map[*Material]struct{}),
	}
	if err := f.createShared(); err != nil {
		f.destroyShared()
		return nil, err
	}
	slogger().Info("gpu: mask factory created",
		"color", o.colorFormat, "stencil", o.stencilFormat, "samples", o.sampleCount)
	return f, nil
}

// NewFactoryFromProvider creates a factory on a shared device from an
// external provider (e.g., gogpu). The provider must implement
// HalDevice() any returning a hal.Device. Unless overridden by opts, the
// color format follows the provider's surface format.
func NewFactoryFromProvider(provider gpucontext.DeviceProvider, opts ...FactoryOption) (*Factory, error) {
	type halProvider interface {
		HalDevice() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("new mask factory: %w", ErrNoHalProvider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("new mask factory: provider HalDevice is not hal.Device: %w", ErrNoHalProvider)
	}
	all := append([]FactoryOption{WithColorFormat(provider.SurfaceFormat())}, opts...)
	return NewFactory(device, all...)
}

// createShared compiles the shader and creates the layouts.
func (f *Factory) createShared() error {
	code, err := compileShader(maskShaderSource)
	if err != nil {
		return err
	}
	shader, err := f.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "mask_shader",
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return fmt.Errorf("create mask shader module: %w", err)
	}
	f.shader = shader

	// One uniform buffer at group(0) binding(0), visible to vertex + fragment stages.
	uniformLayout, err := f.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "mask_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: maskUniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create mask bind group layout: %w", err)
	}
	f.uniformLayout = uniformLayout

	pipeLayout, err := f.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "mask_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{f.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create mask pipeline layout: %w", err)
	}
	f.pipeLayout = pipeLayout
	return nil
}

// destroyShared releases the shader and layouts in reverse creation order.
func (f *Factory) destroyShared() {
	if f.pipeLayout != nil {
		f.device.DestroyPipelineLayout(f.pipeLayout)
		f.pipeLayout = nil
	}
	if f.uniformLayout != nil {
		f.device.DestroyBindGroupLayout(f.uniformLayout)
		f.uniformLayout = nil
	}
	if f.shader != nil {
		f.device.DestroyShaderModule(f.shader)
		f.shader = nil
	}
}

// CreateMaterial builds the render pipeline drawing base with stencil state
// s. It implements ggmask.MaterialFactory.
func (f *Factory) CreateMaterial(base ggmask.Material, s ggmask.StencilState) (ggmask.Material, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrFactoryClosed
	}

	pipeline, err := f.device.CreateRenderPipeline(f.pipelineDescriptor(s))
	if err != nil {
		return nil, fmt.Errorf("create mask pipeline (%s): %w", s, err)
	}
	m := &Material{base: base, state: s, pipeline: pipeline}
	f.live[m] = struct{}{}
	slogger().Debug("gpu: mask pipeline created", "state", s, "live", len(f.live))
	return m, nil
}

// pipelineDescriptor describes the pipeline for stencil state s.
func (f *Factory) pipelineDescriptor(s ggmask.StencilState) *hal.RenderPipelineDescriptor {
	blend := gputypes.BlendStatePremultiplied()
	return &hal.RenderPipelineDescriptor{
		Label:  "mask_pipeline",
		Layout: f.pipeLayout,
		Vertex: hal.VertexState{
			Module:     f.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: vertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{
							Format:         gputypes.VertexFormatFloat32x2,
							Offset:         0,
							ShaderLocation: 0,
						},
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     f.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    f.opts.colorFormat,
					Blend:     &blend,
					WriteMask: s.ColorWrite,
				},
			},
		},
		DepthStencil: depthStencil(s.DepthStencilState(f.opts.stencilFormat)),
		Multisample: gputypes.MultisampleState{
			Count: f.opts.sampleCount,
			Mask:  0xFFFFFFFF,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	}
}

// DestroyMaterial destroys the pipeline of a material created by this
// factory. Other materials and repeated calls are ignored.
func (f *Factory) DestroyMaterial(m ggmask.Material) {
	gm, ok := m.(*Material)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.live[gm]; !ok {
		return
	}
	delete(f.live, gm)
	f.device.DestroyRenderPipeline(gm.pipeline)
	gm.pipeline = nil
	slogger().Debug("gpu: mask pipeline destroyed", "state", gm.state, "live", len(f.live))
}

// PipelineCount returns the number of live pipelines.
func (f *Factory) PipelineCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// Destroy releases every pipeline and the shared resources. Materials still
// referenced by a cache become unusable; CreateMaterial fails afterwards.
// Destroy is idempotent.
func (f *Factory) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	for m := range f.live {
		f.device.DestroyRenderPipeline(m.pipeline)
		m.pipeline = nil
	}
	n := len(f.live)
	clear(f.live)
	f.destroyShared()
	slogger().Info("gpu: mask factory destroyed", "pipelines", n)
}

// SetLogger sets the logger for the gpu package.
// Called by ggmask.SetLogger when this factory backs the default cache.
func (f *Factory) SetLogger(l *slog.Logger) {
	setLogger(l)
}
