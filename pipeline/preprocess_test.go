package pipeline

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIsPlanarRGB(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 0, G: 51, B: 255, A: 255})

	tensor := Normalize(img)

	assert.Equal(t, []int{1, 3, 1, 2}, tensor.Shape)
	assert.InDeltaSlice(t, []float32{1, 0, 0, 0.2, 0, 1}, tensor.Data, 1e-6)
}

func TestNormalizeHonorsSubImageBounds(t *testing.T) {
	img := solidFrames(1, 4, 4, color.RGBA{A: 255})[0]
	img.SetRGBA(2, 2, color.RGBA{R: 255, A: 255})

	sub := img.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)
	tensor := Normalize(sub)

	assert.Equal(t, []int{1, 3, 2, 2}, tensor.Shape)
	assert.InDelta(t, 1.0, tensor.Data[0], 1e-6)
	assert.InDelta(t, 0.0, tensor.Data[1], 1e-6)
}

func TestResizeRoundTripKeepsDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{name: "landscape", width: 1280, height: 720},
		{name: "portrait", width: 480, height: 854},
		{name: "odd", width: 333, height: 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.width, tt.height))
			down := Resize(src, 192, 108)
			assert.Equal(t, image.Pt(192, 108), down.Bounds().Size())

			back := Resize(down, tt.width, tt.height)
			assert.Equal(t, image.Pt(tt.width, tt.height), back.Bounds().Size())
		})
	}
}

func TestResizeSameSizeIsNoop(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, src, Resize(src, 10, 10))
}
