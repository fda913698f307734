package pipeline

import (
	"image"

	"github.com/khaledhikmat/vs-matting/model"
	"golang.org/x/image/draw"
)

// Resize scales img to width x height. The input is returned untouched when
// it already has that size.
func Resize(img *image.RGBA, width, height int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Normalize converts packed 8-bit RGB into a 1x3xHxW planar tensor in [0, 1].
func Normalize(img *image.RGBA) model.Tensor {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	plane := w * h

	t := model.NewTensor(1, 3, h, w)
	for y := 0; y < h; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			px := row[x*4 : x*4+3]
			i := y*w + x
			t.Data[i] = float32(px[0]) / 255
			t.Data[plane+i] = float32(px[1]) / 255
			t.Data[2*plane+i] = float32(px[2]) / 255
		}
	}
	return t
}
