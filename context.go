// Copyright (c) 2024, the wgpu-tools authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgputools

import (
	"image"
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"
)

// Context bundles the GPU adapter with a logical device and its
// queue, and provides the texture factory methods. It is the main
// entry point of this package.
type Context struct {
	// GPU is the adapter the device was created on.
	GPU *GPU

	// Device has the logical device and queue.
	Device *Device
}

// NewContext assembles a context from an already-created GPU
// and Device, which the context takes ownership of.
func NewContext(gp *GPU, dev *Device) *Context {
	return &Context{GPU: gp, Device: dev}
}

// NewContextForSurface returns a new context whose adapter is
// compatible with the given surface, so that textures and render
// targets created on it can be presented there.
func NewContextForSurface(sf *wgpu.Surface) (*Context, error) {
	gp, err := NewGPU(sf)
	if err != nil {
		return nil, err
	}
	dev, err := NewDevice(gp)
	if err != nil {
		gp.Release()
		return nil, err
	}
	return NewContext(gp, dev), nil
}

// NewDefaultContext returns a new context with default settings and
// no surface, for offscreen and compute use.
func NewDefaultContext() (*Context, error) {
	return NewContextForSurface(nil)
}

// Schedule runs the given operations on a fresh command encoder and
// submits the resulting command buffer to the queue. It returns
// without waiting for the GPU to finish; use [Context.ScheduleWait]
// for that.
func (ctx *Context) Schedule(label string, ops func(enc *wgpu.CommandEncoder)) error {
	if ctx.Device == nil || ctx.Device.Device == nil {
		return ErrNotInitialized
	}
	enc, err := ctx.Device.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: label,
	})
	if err != nil {
		return err
	}
	defer enc.Release()

	ops(enc)

	cmd, err := enc.Finish(nil)
	if err != nil {
		return err
	}
	defer cmd.Release()
	ctx.Device.Queue.Submit(cmd)
	return nil
}

// ScheduleWait is [Context.Schedule] followed by a blocking wait
// until the device is done with all submitted work.
func (ctx *Context) ScheduleWait(label string, ops func(enc *wgpu.CommandEncoder)) error {
	err := ctx.Schedule(label, ops)
	if err != nil {
		return err
	}
	ctx.Device.WaitDone()
	return nil
}

// DepthTexture returns a new depth texture of the given size, in the
// [DepthFormat], usable as a render attachment and for sampling with
// a LessEqual comparison sampler.
func (ctx *Context) DepthTexture(width, height int, label string) (*Texture, error) {
	if ctx.Device == nil || ctx.Device.Device == nil {
		return nil, ErrNotInitialized
	}
	tx := NewTexture(ctx.Device)
	tx.Name = label
	err := tx.ConfigDepth(width, height)
	if err != nil {
		tx.Release()
		return nil, err
	}
	return tx, nil
}

// TextureWithData returns a new texture of the given size and format,
// uploaded from the raw pixel data, which must be tightly packed rows
// in the given format. A linear ClampToEdge sampler is attached.
func (ctx *Context) TextureWithData(data []byte, width, height int, format wgpu.TextureFormat, label string) (*Texture, error) {
	if ctx.Device == nil || ctx.Device.Device == nil {
		return nil, ErrNotInitialized
	}
	tx := NewTexture(ctx.Device)
	tx.Name = label
	err := tx.SetData(data, width, height, format)
	if err != nil {
		tx.Release()
		return nil, err
	}
	return tx, nil
}

// TextureFromImage returns a new texture uploaded from the given Go
// image, converted to 8 bit RGBA. The format selects the colorspace
// interpretation and must be one of the 4 byte per pixel formats,
// normally wgpu.TextureFormatRGBA8UnormSrgb. For the linear
// wgpu.TextureFormatRGBA8Unorm, the sRGB image pixels are converted
// to linear colorspace first.
func (ctx *Context) TextureFromImage(img image.Image, format wgpu.TextureFormat, label string) (*Texture, error) {
	rimg := ImageToRGBA(img)
	if format == wgpu.TextureFormatRGBA8Unorm {
		rimg = ImageSRGBToLinear(rimg)
	}
	sz := rimg.Rect.Size()
	return ctx.TextureWithData(rimg.Pix, sz.X, sz.Y, format, label)
}

// TextureFromImageData decodes the given encoded image bytes
// (PNG, JPEG, GIF, BMP, TIFF, or WebP) and returns a new texture
// uploaded from the result, as [Context.TextureFromImage] does.
func (ctx *Context) TextureFromImageData(data []byte, format wgpu.TextureFormat, label string) (*Texture, error) {
	img, _, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return ctx.TextureFromImage(img, format, label)
}

// TextureFromColor returns a new 1x1 texture filled with the given
// color, in non-premultiplied RGBA form. Useful as a solid fallback
// for material slots that have no image.
func (ctx *Context) TextureFromColor(clr color.Color, format wgpu.TextureFormat, label string) (*Texture, error) {
	c := color.NRGBAModel.Convert(clr).(color.NRGBA)
	data := []byte{c.R, c.G, c.B, c.A}
	return ctx.TextureWithData(data, 1, 1, format, label)
}

// Release releases the device and adapter. Textures created on the
// context must be released separately, before the context.
func (ctx *Context) Release() {
	if ctx.Device != nil {
		ctx.Device.Release()
		ctx.Device = nil
	}
	if ctx.GPU != nil {
		ctx.GPU.Release()
		ctx.GPU = nil
	}
}
