// Copyright (c) 2024, the wgpu-tools authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgputools

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// Texture represents a WebGPU Texture with an associated
// TextureView and Sampler. The texture is in device memory,
// in an optimized format.
type Texture struct {

	// Name of the texture, used as the label of the wgpu handles.
	// This is helpful for debugging. Can be empty.
	Name string

	// Format and size of the texture.
	Format TextureFormat

	// Sampler has the sampling parameters for use in shaders.
	Sampler Sampler

	// WebGPU texture handle, in device memory.
	texture *wgpu.Texture

	// WebGPU texture view.
	view *wgpu.TextureView

	// keep track of device for readback and releasing
	device Device
}

// NewTexture returns a new Texture on the given device,
// with default format. No device texture is allocated yet:
// use the Set or Config methods.
func NewTexture(dev *Device) *Texture {
	tx := &Texture{}
	tx.device = *dev
	tx.Format.Defaults()
	tx.Sampler.Defaults()
	return tx
}

// Texture returns the WebGPU texture handle, nil until created.
func (tx *Texture) Texture() *wgpu.Texture {
	return tx.texture
}

// View returns the WebGPU texture view, nil until created.
func (tx *Texture) View() *wgpu.TextureView {
	return tx.view
}

// CreateTexture creates the device texture based on the current
// Format, and a view of that texture. Releases any prior texture.
func (tx *Texture) CreateTexture(usage wgpu.TextureUsage) error {
	tx.ReleaseTexture()

	size := tx.Format.Extent3D()
	t, err := tx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         tx.Name,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   uint32(tx.Format.Samples),
		Dimension:     wgpu.TextureDimension2D,
		Format:        tx.Format.Format,
		Usage:         usage,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTextureCreation, err)
	}
	tx.texture = t
	vw, err := t.CreateView(nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTextureCreation, err)
	}
	tx.view = vw
	return nil
}

// SetData creates the texture with given size and format and uploads
// the raw pixel data to it, which must be in the given format, tightly
// packed rows. The data must have at least stride * height bytes,
// where stride is width times the format's bytes per pixel.
// The texture is created with binding, copy destination, and copy
// source usages, so it can be sampled and read back.
func (tx *Texture) SetData(data []byte, width, height int, format wgpu.TextureFormat) error {
	tx.Format.Set(width, height, format)
	need := tx.Format.ByteSize()
	if need == 0 || len(data) < need {
		return fmt.Errorf("%w: have %d bytes, need %d for %s", ErrTextureCreation, len(data), need, tx.Format.String())
	}

	err := tx.CreateTexture(wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst | wgpu.TextureUsageCopySrc)
	if err != nil {
		return err
	}

	size := tx.Format.Extent3D()
	tx.device.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		data[:need],
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(tx.Format.Stride()),
			RowsPerImage: uint32(height),
		},
		&size,
	)
	return tx.Sampler.Config(&tx.device)
}

// SetFromGoImage sets texture data from a standard Go image,
// as sRGB RGBA. This is most efficiently done using an image.RGBA,
// but other formats will be converted as necessary.
func (tx *Texture) SetFromGoImage(img image.Image) error {
	rimg := ImageToRGBA(img)
	sz := rimg.Rect.Size()
	return tx.SetData(rimg.Pix, sz.X, sz.Y, wgpu.TextureFormatRGBA8UnormSrgb)
}

// ConfigDepth configures this texture as a depth texture of given size,
// with the [DepthFormat], for use as a render attachment. It can also
// be sampled, with a LessEqual comparison sampler.
func (tx *Texture) ConfigDepth(width, height int) error {
	nfmt := TextureFormat{Size: image.Point{width, height}, Format: DepthFormat, Samples: 1}
	if tx.texture != nil && tx.Format == nfmt {
		return nil
	}
	tx.Format = nfmt
	err := tx.CreateTexture(wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding)
	if err != nil {
		return err
	}
	tx.Sampler.MipmapFilter = wgpu.MipmapFilterModeNearest
	tx.Sampler.Compare = wgpu.CompareFunctionLessEqual
	return tx.Sampler.Config(&tx.device)
}

// ReadData reads the texture data back from the device into a new
// byte slice, in tightly packed rows. The texture must have been
// created with copy source usage, as [Texture.SetData] does.
// It submits a copy into a padded staging buffer and blocks until
// the device is done.
func (tx *Texture) ReadData() ([]byte, error) {
	if tx.texture == nil || tx.device.Device == nil {
		return nil, ErrNotInitialized
	}
	td := NewTextureBufferDims(tx.Format.Size, tx.Format.Format)

	buf, err := tx.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            tx.Name + " readback",
		Size:             td.PaddedSize(),
		Usage:            wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	enc, err := tx.device.Device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Release()
	size := tx.Format.Extent3D()
	err = enc.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		&wgpu.ImageCopyBuffer{
			Buffer: buf,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(td.PaddedRowSize),
				RowsPerImage: uint32(td.Height),
			},
		},
		&size,
	)
	if err != nil {
		return nil, err
	}
	cmd, err := enc.Finish(nil)
	if err != nil {
		return nil, err
	}
	tx.device.Queue.Submit(cmd)
	cmd.Release()

	var status wgpu.BufferMapAsyncStatus
	err = buf.MapAsync(wgpu.MapModeRead, 0, td.PaddedSize(), func(s wgpu.BufferMapAsyncStatus) {
		status = s
	})
	if err != nil {
		return nil, err
	}
	tx.device.WaitDone()
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return nil, fmt.Errorf("wgputools: texture readback map status is %s", status.String())
	}
	defer buf.Unmap()

	mapped := buf.GetMappedRange(0, uint(td.PaddedSize()))
	data := make([]byte, td.UnpaddedSize())
	if td.HasNoPadding() {
		copy(data, mapped)
		return data, nil
	}
	for y := uint64(0); y < td.Height; y++ {
		copy(data[y*td.UnpaddedRowSize:(y+1)*td.UnpaddedRowSize],
			mapped[y*td.PaddedRowSize:])
	}
	return data, nil
}

// ReadGoImage reads the texture back from the device as a Go
// image.RGBA. The texture format must be one of the 4 byte per pixel
// RGBA formats. BGRA textures have their channels swizzled into RGBA
// order on the host.
func (tx *Texture) ReadGoImage() (*image.RGBA, error) {
	switch tx.Format.Format {
	case wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatRGBA8UnormSrgb,
		wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb:
	default:
		return nil, fmt.Errorf("wgputools: cannot read %s as RGBA image", FormatName(tx.Format.Format))
	}
	data, err := tx.ReadData()
	if err != nil {
		return nil, err
	}
	img := &image.RGBA{Pix: data, Stride: tx.Format.Stride(), Rect: tx.Format.Bounds()}
	if tx.Format.Format == wgpu.TextureFormatBGRA8Unorm ||
		tx.Format.Format == wgpu.TextureFormatBGRA8UnormSrgb {
		for i := 0; i < len(data); i += 4 {
			data[i], data[i+2] = data[i+2], data[i]
		}
	}
	return img, nil
}

// ReleaseView releases any existing view.
func (tx *Texture) ReleaseView() {
	if tx.view == nil {
		return
	}
	tx.view.Release()
	tx.view = nil
}

// ReleaseTexture frees the device memory version of the texture,
// and its view.
func (tx *Texture) ReleaseTexture() {
	tx.ReleaseView()
	if tx.texture == nil {
		return
	}
	tx.texture.Release()
	tx.texture = nil
}

// Release frees the texture, view, and sampler.
func (tx *Texture) Release() {
	tx.ReleaseTexture()
	tx.Sampler.Release()
}
