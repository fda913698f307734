package pipeline

import (
	"fmt"
	"image"
	"math"

	"github.com/khaledhikmat/vs-matting/model"
)

// Composite turns one inference result into a packed frame at inference
// resolution. src is the resized input frame; only ModeMerge reads it.
func Composite(res model.Result, src *image.RGBA, cfg Config) (*image.RGBA, error) {
	w, h := cfg.Schedule.Width, cfg.Schedule.Height
	if !res.Foreground.HasShape(cfg.Schedule.ImageShape()) {
		return nil, fmt.Errorf("%w: foreground is %v, want %v", model.ErrShapeMismatch, res.Foreground.Shape, cfg.Schedule.ImageShape())
	}
	if !res.Alpha.HasShape(cfg.Schedule.AlphaShape()) {
		return nil, fmt.Errorf("%w: alpha is %v, want %v", model.ErrShapeMismatch, res.Alpha.Shape, cfg.Schedule.AlphaShape())
	}

	if cfg.Mode == ModeMerge && (src == nil || src.Bounds().Dx() != w || src.Bounds().Dy() != h) {
		return nil, fmt.Errorf("%w: merge source frame does not match %dx%d", model.ErrShapeMismatch, w, h)
	}

	plane := w * h
	fgr, pha := res.Foreground.Data, res.Alpha.Data
	bg := cfg.Background

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			i := y*w + x
			a := clampUnit(pha[i])
			px := row[x*4 : x*4+4]

			switch cfg.Mode {
			case ModeAlpha:
				v := quantize(a)
				px[0], px[1], px[2] = v, v, v
			case ModeMerge:
				s := src.Pix[src.PixOffset(src.Rect.Min.X+x, src.Rect.Min.Y+y):]
				px[0] = quantize(float32(s[0]) / 255 * a)
				px[1] = quantize(float32(s[1]) / 255 * a)
				px[2] = quantize(float32(s[2]) / 255 * a)
			default:
				px[0] = quantize(blend(fgr[i], bg[0], a))
				px[1] = quantize(blend(fgr[plane+i], bg[1], a))
				px[2] = quantize(blend(fgr[2*plane+i], bg[2], a))
			}
			px[3] = 0xff
		}
	}
	return out, nil
}

// blend mixes foreground over background. A term whose weight is zero is
// left out, so a non-finite foreground under alpha 0 still yields bg.
func blend(fg, bg, a float32) float32 {
	switch {
	case a <= 0:
		return bg
	case a >= 1:
		return fg
	}
	return fg*a + bg*(1-a)
}

// clampUnit pins alpha to [0, 1]; NaN counts as transparent.
func clampUnit(v float32) float32 {
	switch {
	case !(v > 0):
		return 0
	case v > 1:
		return 1
	}
	return v
}

// quantize maps a normalized value to 8 bits, clamping out-of-range output.
func quantize(v float32) uint8 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}

// BackgroundRGB is the 8-bit color a fully transparent pixel composites to.
func BackgroundRGB(bg [3]float32) [3]uint8 {
	return [3]uint8{quantize(bg[0]), quantize(bg[1]), quantize(bg[2])}
}
