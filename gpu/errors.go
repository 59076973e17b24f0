// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import "errors"

var (
	// ErrNilDevice is returned when a factory is built without a device.
	ErrNilDevice = errors.New("gpu: nil device")

	// ErrNoHalProvider is returned when a device provider does not expose
	// its hal.Device.
	ErrNoHalProvider = errors.New("gpu: provider does not expose HAL types")

	// ErrFactoryClosed is returned by CreateMaterial after Destroy.
	ErrFactoryClosed = errors.New("gpu: factory destroyed")
)
