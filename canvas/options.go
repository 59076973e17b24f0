// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import "github.com/gogpu/ggmask"

// Option configures a Canvas during creation.
type Option func(*options)

type options struct {
	cache    *ggmask.MaterialCache
	diag     ggmask.Diagnostics
	maskOpts []ggmask.MaskOption
}

// WithMaterialCache sets the cache shared by every mask and renderer on the
// canvas. The default is ggmask.DefaultMaterialCache().
func WithMaterialCache(c *ggmask.MaterialCache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithDiagnostics sets the sink masks report depth problems to.
func WithDiagnostics(d ggmask.Diagnostics) Option {
	return func(o *options) {
		o.diag = d
	}
}

// WithMaskOptions appends options applied to every mask added to the canvas.
func WithMaskOptions(opts ...ggmask.MaskOption) Option {
	return func(o *options) {
		o.maskOpts = append(o.maskOpts, opts...)
	}
}
