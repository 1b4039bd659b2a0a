// Copyright (c) 2024, the wgpu-tools authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wgputools is a small convenience layer over WebGPU,
// via github.com/cogentcore/webgpu/wgpu. It acquires a device / queue
// [Context] and builds [Texture] objects from raw bytes, decoded images,
// or solid colors. All of the actual GPU work (adapter negotiation,
// command submission, texture upload) is owned by the wgpu library;
// this package only packages the descriptors and the handles.
//
// Basic usage, offscreen:
//
//	ctx, err := wgputools.NewDefaultContext()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Release()
//
//	tx, err := ctx.TextureFromImageData(pngBytes, wgpu.TextureFormatRGBA8UnormSrgb, "albedo")
//
// For rendering to a window, create a surface with [GLFWCreateWindow]
// and pass it to [NewContextForSurface], so that the adapter is
// compatible with the presentation target.
package wgputools
