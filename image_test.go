// Copyright (c) 2024, the wgpu-tools authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgputools

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testImage returns a small gradient image for upload and
// decode tests.
func testImage(sz image.Point) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: sz})
	for y := 0; y < sz.Y; y++ {
		for x := 0; x < sz.X; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * x / sz.X),
				G: uint8(255 * y / sz.Y),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func TestDecodeImage(t *testing.T) {
	src := testImage(image.Point{8, 8})
	var buf bytes.Buffer
	err := png.Encode(&buf, src)
	assert.NoError(t, err)

	img, fmtName, err := DecodeImage(buf.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, "png", fmtName)
	assert.Equal(t, src.Rect, img.Bounds())

	got := ImageToRGBA(img)
	assert.Equal(t, src.Pix, got.Pix)
}

func TestDecodeImageErrors(t *testing.T) {
	_, _, err := DecodeImage([]byte("not an image at all"))
	assert.ErrorIs(t, err, ErrImageDecode)

	// recognizable non-image file type
	zipHdr := []byte{0x50, 0x4B, 0x03, 0x04, 0, 0, 0, 0, 0, 0, 0, 0}
	_, _, err = DecodeImage(zipHdr)
	assert.ErrorIs(t, err, ErrImageDecode)

	_, _, err = DecodeImage(nil)
	assert.ErrorIs(t, err, ErrImageDecode)
}

func TestImageToRGBA(t *testing.T) {
	nimg := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	nimg.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	nimg.SetNRGBA(1, 1, color.NRGBA{0, 0, 255, 255})

	rimg := ImageToRGBA(nimg)
	assert.Equal(t, nimg.Bounds(), rimg.Bounds())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rimg.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rimg.RGBAAt(1, 1))

	// already RGBA is passed through without copying
	same := ImageToRGBA(rimg)
	assert.Same(t, rimg, same)
}

func TestImageToRGBASubimage(t *testing.T) {
	parent := testImage(image.Point{12, 12})
	sub := parent.SubImage(image.Rect(2, 2, 10, 10)).(*image.RGBA)
	assert.NotEqual(t, 4*sub.Rect.Dx(), sub.Stride)

	rimg := ImageToRGBA(sub)
	assert.NotSame(t, sub, rimg)
	assert.Equal(t, image.Rect(0, 0, 8, 8), rimg.Bounds())
	assert.Equal(t, 4*8, rimg.Stride)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, parent.RGBAAt(x+2, y+2), rimg.RGBAAt(x, y))
		}
	}
}

func TestSRGBConvertSubimage(t *testing.T) {
	parent := testImage(image.Point{12, 12})
	sub := parent.SubImage(image.Rect(2, 2, 10, 10)).(*image.RGBA)

	lin := ImageSRGBToLinear(sub)
	assert.Equal(t, image.Rect(0, 0, 8, 8), lin.Bounds())
	assert.Equal(t, 4*8, lin.Stride)

	// same pixels through the packed copy must convert identically
	packed := ImageSRGBToLinear(ImageToRGBA(sub))
	assert.Equal(t, packed.Pix, lin.Pix)

	back := ImageSRGBFromLinear(lin)
	assert.Equal(t, lin.Bounds(), back.Bounds())
}

func TestSRGBRoundTrip(t *testing.T) {
	assert.Equal(t, float32(0), SRGBToLinearComp(0))
	assert.Equal(t, float32(0), SRGBFromLinearComp(0))
	assert.InDelta(t, 1, SRGBToLinearComp(1), 1e-5)
	assert.InDelta(t, 1, SRGBFromLinearComp(1), 1e-5)

	// reference values: sRGB 0.5 encodes linear ~0.2140, and back
	assert.InDelta(t, 0.21404, SRGBToLinearComp(0.5), 1e-4)
	assert.InDelta(t, 0.73536, SRGBFromLinearComp(0.5), 1e-4)

	for _, v := range []float32{0.01, 0.25, 0.5, 0.73, 0.99} {
		lin := SRGBToLinearComp(v)
		assert.Less(t, lin, v) // gamma removal darkens midtones
		assert.InDelta(t, v, SRGBFromLinearComp(lin), 1e-5)
	}

	src := testImage(image.Point{4, 4})
	lin := ImageSRGBToLinear(src)
	back := ImageSRGBFromLinear(lin)
	for i := 3; i < len(src.Pix); i += 4 {
		assert.Equal(t, src.Pix[i], back.Pix[i]) // alpha untouched
	}
}
