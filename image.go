// Copyright (c) 2024, the wgpu-tools authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgputools

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"math"

	// codecs for DecodeImage, beyond the stdlib png / jpeg / gif
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/h2non/filetype"
)

// ImageToRGBA returns given image as an image.RGBA,
// converting if not already. The result always has tightly packed
// rows starting at the origin, so subimages are repacked.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rg, ok := img.(*image.RGBA); ok {
		if rg.Stride == 4*rg.Rect.Dx() && rg.Rect.Min == (image.Point{}) {
			return rg
		}
	}
	out := image.NewRGBA(image.Rectangle{Max: img.Bounds().Size()})
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// DecodeImage decodes in-memory encoded image bytes, returning the
// image and the format name ("png", "jpeg", "gif", "bmp", "tiff",
// "webp"). Errors indicate whether the data was recognized as some
// other file type, or not recognized at all.
func DecodeImage(data []byte) (image.Image, string, error) {
	img, fmtName, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, fmtName, nil
	}
	if kind, kerr := filetype.Match(data); kerr == nil && kind != filetype.Unknown {
		return nil, "", fmt.Errorf("%w: %s data: %w", ErrImageDecode, kind.Extension, err)
	}
	return nil, "", fmt.Errorf("%w: %w", ErrImageDecode, err)
}

// SRGBToLinearComp converts an sRGB rgb component to linear space
// (removes gamma).
func SRGBToLinearComp(srgb float32) float32 {
	if srgb <= 0.04045 {
		return srgb / 12.92
	}
	return float32(math.Pow(float64(srgb+0.055)/1.055, 2.4))
}

// SRGBFromLinearComp converts a linear rgb component to the
// non-linear (gamma corrected) sRGB value.
func SRGBFromLinearComp(lin float32) float32 {
	if lin <= 0.0031308 {
		return 12.92 * lin
	}
	return 1.055*float32(math.Pow(float64(lin), 1/2.4)) - 0.055
}

func imgCompToUint8(val float32) uint8 {
	if val > 1 {
		val = 1
	}
	return uint8(val * float32(0xff))
}

// convertImage returns a packed, origin-based copy of img with the
// given conversion applied to the R, G, B components of each pixel.
// Rows are walked through Stride, so subimages work.
func convertImage(img *image.RGBA, comp func(float32) float32) *image.RGBA {
	sz := img.Rect.Size()
	out := image.NewRGBA(image.Rectangle{Max: sz})
	tof := 1.0 / float32(0xff)
	for y := 0; y < sz.Y; y++ {
		si := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		di := out.PixOffset(0, y)
		for x := 0; x < sz.X; x++ {
			r := float32(img.Pix[si]) * tof
			g := float32(img.Pix[si+1]) * tof
			b := float32(img.Pix[si+2]) * tof
			out.Pix[di] = imgCompToUint8(comp(r))
			out.Pix[di+1] = imgCompToUint8(comp(g))
			out.Pix[di+2] = imgCompToUint8(comp(b))
			out.Pix[di+3] = img.Pix[si+3]
			si += 4
			di += 4
		}
	}
	return out
}

// ImageSRGBToLinear returns a linear colorspace version of an sRGB
// colorspace image, for uploading to linear Unorm texture formats.
// Alpha is passed through.
func ImageSRGBToLinear(img *image.RGBA) *image.RGBA {
	return convertImage(img, SRGBToLinearComp)
}

// ImageSRGBFromLinear returns an sRGB colorspace version of a linear
// colorspace image, e.g., after reading back from a Unorm texture.
// Alpha is passed through.
func ImageSRGBFromLinear(img *image.RGBA) *image.RGBA {
	return convertImage(img, SRGBFromLinearComp)
}
