// Copyright (c) 2024, the wgpu-tools authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgputools

import "errors"

// Errors returned by this package. Underlying wgpu and image errors are
// wrapped, so callers can test with [errors.Is] and still see the cause.
var (
	// ErrNoAdapter is returned when no compatible GPU adapter is found.
	ErrNoAdapter = errors.New("wgputools: requesting adapter failed")

	// ErrDeviceRequest is returned when logical device creation fails.
	// The wgpu error is wrapped alongside it.
	ErrDeviceRequest = errors.New("wgputools: requesting device failed")

	// ErrImageDecode is returned when in-memory image data cannot be
	// decoded. The decoder error is wrapped alongside it.
	ErrImageDecode = errors.New("wgputools: image decoding failed")

	// ErrTextureCreation is returned when a texture cannot be created,
	// including when the pixel data is too short for the requested size.
	ErrTextureCreation = errors.New("wgputools: texture creation failed")

	// ErrNotInitialized is returned when an operation requires a released
	// or never-created device.
	ErrNotInitialized = errors.New("wgputools: context is not initialized")
)
