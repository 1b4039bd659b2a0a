// Copyright (c) 2024, the wgpu-tools authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgputools

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the texture format used for depth textures.
const DepthFormat = wgpu.TextureFormatDepth32Float

// TextureFormat describes the size and WebGPU format of a 2D texture.
type TextureFormat struct {
	// Size of the texture in pixels.
	Size image.Point

	// Format of the pixels: RGBA8UnormSrgb is the default.
	Format wgpu.TextureFormat

	// Samples is the number of multisamples, 1 unless the texture
	// is a multisampled render target.
	Samples int
}

// NewTextureFormat returns a new TextureFormat with given size and format.
func NewTextureFormat(width, height int, format wgpu.TextureFormat) *TextureFormat {
	tf := &TextureFormat{}
	tf.Defaults()
	tf.Size = image.Point{width, height}
	tf.Format = format
	return tf
}

func (tf *TextureFormat) Defaults() {
	tf.Format = wgpu.TextureFormatRGBA8UnormSrgb
	tf.Samples = 1
}

// String returns human-readable version of format
func (tf *TextureFormat) String() string {
	return fmt.Sprintf("Size: %v  Format: %s  MultiSample: %d", tf.Size, FormatName(tf.Format), tf.Samples)
}

// IsStdRGBA returns true if format is the standard
// wgpu.TextureFormatRGBA8UnormSrgb,
// which is compatible with the go image.RGBA format.
func (tf *TextureFormat) IsStdRGBA() bool {
	return tf.Format == wgpu.TextureFormatRGBA8UnormSrgb
}

// IsRGBAUnorm returns true if format is the
// wgpu.TextureFormatRGBA8Unorm format,
// which is compatible with go image.RGBA with colorspace conversion.
func (tf *TextureFormat) IsRGBAUnorm() bool {
	return tf.Format == wgpu.TextureFormatRGBA8Unorm
}

// IsDepth returns true if format is a depth or depth / stencil format.
func (tf *TextureFormat) IsDepth() bool {
	return tf.Format == wgpu.TextureFormatDepth32Float ||
		tf.Format == wgpu.TextureFormatDepth24PlusStencil8
}

// SetSize sets the width, height
func (tf *TextureFormat) SetSize(w, h int) {
	tf.Size = image.Point{X: w, Y: h}
}

// Set sets width, height and format
func (tf *TextureFormat) Set(w, h int, ft wgpu.TextureFormat) {
	tf.SetSize(w, h)
	tf.Format = ft
}

// Size32 returns size as uint32 values
func (tf *TextureFormat) Size32() (width, height uint32) {
	width = uint32(tf.Size.X)
	height = uint32(tf.Size.Y)
	return
}

// Extent3D returns the size as a wgpu Extent3D, with 1 array layer.
func (tf *TextureFormat) Extent3D() wgpu.Extent3D {
	return wgpu.Extent3D{
		Width:              uint32(tf.Size.X),
		Height:             uint32(tf.Size.Y),
		DepthOrArrayLayers: 1,
	}
}

// Bounds returns the rectangle defining this image: 0,0,w,h
func (tf *TextureFormat) Bounds() image.Rectangle {
	return image.Rectangle{Max: tf.Size}
}

// BytesPerPixel returns number of bytes per pixel in host memory.
// Only works for the formats in [FormatSizes]; returns 0 otherwise.
func (tf *TextureFormat) BytesPerPixel() int {
	return FormatSizes[tf.Format]
}

// Stride returns number of bytes per image row.
func (tf *TextureFormat) Stride() int {
	return tf.BytesPerPixel() * tf.Size.X
}

// ByteSize returns the total number of bytes needed to represent the
// texture in host memory, as stride times height.
func (tf *TextureFormat) ByteSize() int {
	return tf.Stride() * tf.Size.Y
}

// FormatSizes gives the size in bytes of one pixel,
// for the formats this package uploads and reads back.
var FormatSizes = map[wgpu.TextureFormat]int{
	wgpu.TextureFormatUndefined:           0,
	wgpu.TextureFormatR8Unorm:             1,
	wgpu.TextureFormatR16Uint:             2,
	wgpu.TextureFormatR32Float:            4,
	wgpu.TextureFormatRG32Float:           8,
	wgpu.TextureFormatRGBA32Float:         16,
	wgpu.TextureFormatRGBA8Unorm:          4,
	wgpu.TextureFormatRGBA8UnormSrgb:      4,
	wgpu.TextureFormatBGRA8Unorm:          4,
	wgpu.TextureFormatBGRA8UnormSrgb:      4,
	wgpu.TextureFormatDepth32Float:        4,
	wgpu.TextureFormatDepth24PlusStencil8: 4,
}

var formatNames = map[wgpu.TextureFormat]string{
	wgpu.TextureFormatRGBA8UnormSrgb: "RGBA 8bit sRGB colorspace",
	wgpu.TextureFormatRGBA8Unorm:     "RGBA 8bit unsigned linear colorspace",
	wgpu.TextureFormatBGRA8UnormSrgb: "BGRA 8bit sRGB colorspace",
	wgpu.TextureFormatBGRA8Unorm:     "BGRA 8bit unsigned linear colorspace",
	wgpu.TextureFormatDepth32Float:   "32bit floating point depth",
}

// FormatName translates a texture format into a human-readable string
// for the most commonly used formats.
func FormatName(ft wgpu.TextureFormat) string {
	if nm, ok := formatNames[ft]; ok {
		return nm
	}
	return fmt.Sprintf("format %d", ft)
}

//////////////////////////////////////////////////////////////////////

// TextureBufferDims represents the sizes required in a wgpu Buffer to
// hold a texture of a given size and format. Copy operations between
// textures and buffers require rows padded to 256 byte alignment.
type TextureBufferDims struct {
	Width           uint64
	Height          uint64
	UnpaddedRowSize uint64
	PaddedRowSize   uint64
}

func NewTextureBufferDims(size image.Point, format wgpu.TextureFormat) *TextureBufferDims {
	td := &TextureBufferDims{}
	td.Set(size, format)
	return td
}

func (td *TextureBufferDims) Set(size image.Point, format wgpu.TextureFormat) {
	td.Width = uint64(size.X)
	td.Height = uint64(size.Y)
	bpp := uint64(FormatSizes[format])
	td.UnpaddedRowSize = td.Width * bpp
	align := uint64(wgpu.CopyBytesPerRowAlignment)
	padding := (align - td.UnpaddedRowSize%align) % align
	td.PaddedRowSize = td.UnpaddedRowSize + padding
}

// PaddedSize returns the total padded size of data
func (td *TextureBufferDims) PaddedSize() uint64 {
	return td.PaddedRowSize * td.Height
}

// UnpaddedSize returns the total unpadded size of data
func (td *TextureBufferDims) UnpaddedSize() uint64 {
	return td.UnpaddedRowSize * td.Height
}

// HasNoPadding returns true if the Unpadded and Padded row sizes
// are the same.
func (td *TextureBufferDims) HasNoPadding() bool {
	return td.UnpaddedRowSize == td.PaddedRowSize
}
