// Copyright (c) 2024, the wgpu-tools authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgputools

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// Debug enables extra logging of adapter properties and limits
// during initialization.
var Debug = false

// AdapterEnv is the environment variable that overrides automatic
// adapter selection. If set, the first enumerated adapter whose name
// contains the value (case insensitive) is used.
const AdapterEnv = "WGPU_TOOLS_ADAPTER"

var theInstance *wgpu.Instance

// Instance returns the shared WebGPU instance, creating it on
// first use.
func Instance() *wgpu.Instance {
	if theInstance == nil {
		theInstance = wgpu.CreateInstance(nil)
	}
	return theInstance
}

// GPU represents the physical GPU hardware: the WebGPU adapter
// along with its properties and limits.
type GPU struct {
	// Adapter is the WebGPU adapter handle.
	Adapter *wgpu.Adapter

	// Properties has the name, vendor, driver and backend of the adapter.
	Properties wgpu.AdapterInfo

	// Limits has the maximum sizes and counts the adapter supports.
	Limits wgpu.SupportedLimits
}

// NewGPU returns a new GPU with an adapter compatible with the given
// surface, which can be nil for offscreen use. The adapter is chosen
// with a high-performance power preference, unless [AdapterEnv]
// selects one by name.
func NewGPU(sf *wgpu.Surface) (*GPU, error) {
	return NewGPUWithOptions(sf, wgpu.PowerPreferenceHighPerformance, false)
}

// NewGPUWithOptions is the full form of [NewGPU], with explicit
// power preference and fallback-adapter settings.
func NewGPUWithOptions(sf *wgpu.Surface, power wgpu.PowerPreference, forceFallback bool) (*GPU, error) {
	gp := &GPU{}
	ad, err := requestAdapter(sf, power, forceFallback)
	if err != nil {
		return nil, err
	}
	gp.Adapter = ad
	gp.Properties = ad.GetInfo()
	gp.Limits = ad.GetLimits()
	if Debug {
		slog.Info("wgputools: selected adapter",
			"name", gp.Properties.Name,
			"vendor", gp.Properties.VendorName,
			"driver", gp.Properties.DriverDescription,
			"backend", gp.Properties.BackendType,
			"maxTextureDimension2D", gp.Limits.Limits.MaxTextureDimension2D)
	}
	return gp, nil
}

func requestAdapter(sf *wgpu.Surface, power wgpu.PowerPreference, forceFallback bool) (*wgpu.Adapter, error) {
	if sel := os.Getenv(AdapterEnv); sel != "" {
		if ad := adapterByName(sel); ad != nil {
			return ad, nil
		}
		slog.Warn("wgputools: no adapter matching "+AdapterEnv+" selection, falling back to automatic", "selection", sel)
	}
	ad, err := Instance().RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    sf,
		PowerPreference:      power,
		ForceFallbackAdapter: forceFallback,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	if ad == nil {
		return nil, ErrNoAdapter
	}
	return ad, nil
}

// adapterByName returns the first enumerated adapter whose name
// contains the given string, case insensitive, or nil.
func adapterByName(name string) *wgpu.Adapter {
	name = strings.ToLower(name)
	ads := Instance().EnumerateAdapters(nil)
	var match *wgpu.Adapter
	for _, ad := range ads {
		if match == nil && strings.Contains(strings.ToLower(ad.GetInfo().Name), name) {
			match = ad
			continue
		}
		ad.Release()
	}
	return match
}

// MaxTextureDimension2D returns the maximum width or height of a
// 2D texture on this adapter.
func (gp *GPU) MaxTextureDimension2D() uint32 {
	return gp.Limits.Limits.MaxTextureDimension2D
}

// PropertiesString returns a human-readable description of the adapter.
func (gp *GPU) PropertiesString() string {
	return fmt.Sprintf("%s (%v, %v) driver: %s", gp.Properties.Name,
		gp.Properties.AdapterType, gp.Properties.BackendType,
		gp.Properties.DriverDescription)
}

// Release releases the adapter. The shared instance is not released,
// as other GPUs may still be using it.
func (gp *GPU) Release() {
	if gp.Adapter == nil {
		return
	}
	gp.Adapter.Release()
	gp.Adapter = nil
}

// NoDisplayGPU returns a GPU and Device suitable for offscreen,
// compute, or testing use, without any surface.
func NoDisplayGPU() (*GPU, *Device, error) {
	gp, err := NewGPU(nil)
	if err != nil {
		return nil, nil, err
	}
	dev, err := NewDevice(gp)
	if err != nil {
		gp.Release()
		return nil, nil, err
	}
	return gp, dev, nil
}
