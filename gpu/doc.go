// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

// Package gpu backs ggmask stencil materials with wgpu/hal render pipelines.
//
// A Factory creates one pipeline per (base material, stencil state) pair
// requested by a ggmask.MaterialCache and destroys it when the cache drops
// the last reference. Install it as the default cache to make every mask
// draw through the GPU:
//
//	f, err := gpu.NewFactory(device)
//	if err != nil {
//	    return err
//	}
//	defer f.Destroy()
//	ggmask.SetDefaultMaterialCache(ggmask.NewMaterialCache(f))
//
// When encoding a frame, call Bind for each draw command's material to set
// its pipeline and stencil reference, and SetClip for its clip bounds.
// The render pass must have a depth/stencil attachment in the factory's
// stencil format, cleared to 0.
package gpu
