// Copyright (c) 2024, the wgpu-tools authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgputools

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Device holds the logical Device and associated Queue.
type Device struct {
	// Device is the logical device.
	Device *wgpu.Device

	// Queue is the command submission queue for this device.
	Queue *wgpu.Queue
}

// NewDevice returns a new device for given GPU, with default
// features and limits. It is the responsibility of the caller
// to release it.
func NewDevice(gp *GPU) (*Device, error) {
	return NewDeviceWithDescriptor(gp, nil)
}

// NewDeviceWithDescriptor returns a new device for given GPU using
// the given descriptor, which can specify a label, required features,
// and required limits. A nil descriptor uses wgpu defaults.
func NewDeviceWithDescriptor(gp *GPU, desc *wgpu.DeviceDescriptor) (*Device, error) {
	wdev, err := gp.Adapter.RequestDevice(desc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceRequest, err)
	}
	dev := &Device{Device: wdev}
	dev.Queue = wdev.GetQueue()
	return dev, nil
}

// WaitDone waits until the device is done with all current work.
func (dv *Device) WaitDone() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
}

// Release waits for the device to finish and releases it.
// The queue is owned by the device and goes with it.
func (dv *Device) Release() {
	if dv.Device == nil {
		return
	}
	dv.WaitDone()
	dv.Device.Release()
	dv.Device = nil
	dv.Queue = nil
}
