// Copyright (c) 2024, the wgpu-tools authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgputools

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Sampler represents a WebGPU image sampler, with the settings this
// package uses for sampled textures.
type Sampler struct {
	Name string

	// UMode is what to do when going off the horizontal edge.
	UMode SamplerModes

	// VMode is what to do when going off the vertical edge.
	VMode SamplerModes

	// WMode is what to do when going off the depth edge.
	WMode SamplerModes

	// MipmapFilter is the filtering between mip levels.
	MipmapFilter wgpu.MipmapFilterMode

	// Compare, if not Undefined, makes this a comparison sampler,
	// used for depth textures.
	Compare wgpu.CompareFunction

	sampler *wgpu.Sampler
}

func (sm *Sampler) Defaults() {
	sm.UMode = ClampToEdge
	sm.VMode = ClampToEdge
	sm.WMode = ClampToEdge
	sm.MipmapFilter = wgpu.MipmapFilterModeLinear
	sm.Compare = wgpu.CompareFunctionUndefined
}

// Sampler returns the WebGPU sampler handle, which is nil
// until [Sampler.Config] is called.
func (sm *Sampler) Sampler() *wgpu.Sampler {
	return sm.sampler
}

// Config configures the sampler on the device, with linear
// magnification and minification filtering.
func (sm *Sampler) Config(dev *Device) error {
	sm.Release()
	samp, err := dev.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         sm.Name,
		AddressModeU:  sm.UMode.Mode(),
		AddressModeV:  sm.VMode.Mode(),
		AddressModeW:  sm.WMode.Mode(),
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  sm.MipmapFilter,
		LodMinClamp:   0,
		LodMaxClamp:   100,
		Compare:       sm.Compare,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return err
	}
	sm.sampler = samp
	return nil
}

func (sm *Sampler) Release() {
	if sm.sampler == nil {
		return
	}
	sm.sampler.Release()
	sm.sampler = nil
}

// SamplerModes are the texture address modes, for going off
// the edge of the texture.
type SamplerModes int32

const (
	// ClampToEdge takes the color of the edge closest to the coordinate
	// beyond the image dimensions.
	ClampToEdge SamplerModes = iota

	// Repeat the texture when going beyond the image dimensions.
	Repeat

	// MirroredRepeat is like Repeat, but inverts the coordinates to
	// mirror the image when going beyond the dimensions.
	MirroredRepeat
)

func (sm SamplerModes) Mode() wgpu.AddressMode {
	return addressModes[sm]
}

var addressModes = map[SamplerModes]wgpu.AddressMode{
	ClampToEdge:    wgpu.AddressModeClampToEdge,
	Repeat:         wgpu.AddressModeRepeat,
	MirroredRepeat: wgpu.AddressModeMirrorRepeat,
}
