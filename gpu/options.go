// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import (
	"github.com/gogpu/ggmask"
	"github.com/gogpu/gputypes"
)

// FactoryOption configures a Factory.
type FactoryOption func(*factoryOptions)

// factoryOptions holds optional configuration for NewFactory.
type factoryOptions struct {
	colorFormat   gputypes.TextureFormat
	stencilFormat gputypes.TextureFormat
	sampleCount   uint32
}

func defaultFactoryOptions() factoryOptions {
	return factoryOptions{
		colorFormat:   gputypes.TextureFormatBGRA8Unorm,
		stencilFormat: ggmask.StencilFormat,
		sampleCount:   1,
	}
}

// WithColorFormat sets the color attachment format pipelines render to.
// Default: BGRA8Unorm. TextureFormatUndefined keeps the default.
func WithColorFormat(f gputypes.TextureFormat) FactoryOption {
	return func(o *factoryOptions) {
		if f != gputypes.TextureFormatUndefined {
			o.colorFormat = f
		}
	}
}

// WithStencilFormat sets the depth/stencil attachment format.
// Default: ggmask.StencilFormat.
func WithStencilFormat(f gputypes.TextureFormat) FactoryOption {
	return func(o *factoryOptions) {
		if f != gputypes.TextureFormatUndefined {
			o.stencilFormat = f
		}
	}
}

// WithSampleCount sets the MSAA sample count. Values below 1 are ignored.
func WithSampleCount(n uint32) FactoryOption {
	return func(o *factoryOptions) {
		if n >= 1 {
			o.sampleCount = n
		}
	}
}
