package model

import (
	"fmt"
	"math"
)

type Variant string

const (
	MobileNetV3 Variant = "mobilenetv3"
	ResNet50    Variant = "resnet50"
)

var Variants = []Variant{MobileNetV3, ResNet50}

func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q (choose from %v)", ErrInvalidVariant, s, Variants)
}

// StateChannels returns the channel count of each recurrent stage.
func (v Variant) StateChannels() [StateStages]int {
	if v == ResNet50 {
		return [StateStages]int{16, 32, 64, 128}
	}
	return [StateStages]int{16, 20, 40, 64}
}

type Refiner string

const (
	DeepGuidedFilter Refiner = "deep_guided_filter"
	FastGuidedFilter Refiner = "fast_guided_filter"
)

var Refiners = []Refiner{DeepGuidedFilter, FastGuidedFilter}

func ParseRefiner(s string) (Refiner, error) {
	for _, r := range Refiners {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q (choose from %v)", ErrInvalidRefiner, s, Refiners)
}

const (
	DefaultInputWidth      = 1920
	DefaultInputHeight     = 1080
	DefaultDownsampleRatio = 0.4
)

// Schedule fixes the input resolution of a graph and the spatial size of
// each recurrent stage. Exporter and runtime derive every shape from it.
type Schedule struct {
	Width           int              `json:"width"`
	Height          int              `json:"height"`
	DownsampleRatio float64          `json:"downsampleRatio"`
	Channels        [StateStages]int `json:"channels"`
}

func NewSchedule(variant Variant, width, height int, ratio float64) (Schedule, error) {
	s := Schedule{
		Width:           width,
		Height:          height,
		DownsampleRatio: ratio,
		Channels:        variant.StateChannels(),
	}
	return s, s.Validate()
}

func DefaultSchedule() Schedule {
	return Schedule{
		Width:           DefaultInputWidth,
		Height:          DefaultInputHeight,
		DownsampleRatio: DefaultDownsampleRatio,
		Channels:        MobileNetV3.StateChannels(),
	}
}

func (s Schedule) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: input resolution %dx%d", ErrInvalidSchedule, s.Width, s.Height)
	}
	if s.DownsampleRatio <= 0 || s.DownsampleRatio > 1 {
		return fmt.Errorf("%w: downsample ratio %v not in (0, 1]", ErrInvalidSchedule, s.DownsampleRatio)
	}
	for i, c := range s.Channels {
		if c <= 0 {
			return fmt.Errorf("%w: stage %d has %d channels", ErrInvalidSchedule, i+1, c)
		}
	}
	return nil
}

// ImageShape is the NCHW shape of the image input.
func (s Schedule) ImageShape() []int {
	return []int{1, 3, s.Height, s.Width}
}

// AlphaShape is the NCHW shape of the matte output.
func (s Schedule) AlphaShape() []int {
	return []int{1, 1, s.Height, s.Width}
}

// StateShapes halves the downsampled resolution once per stage, rounding up
// the way a stride-2 convolution with padding does.
func (s Schedule) StateShapes() [StateStages][]int {
	h := scaled(s.Height, s.DownsampleRatio)
	w := scaled(s.Width, s.DownsampleRatio)

	var shapes [StateStages][]int
	for i := range shapes {
		h, w = (h+1)/2, (w+1)/2
		shapes[i] = []int{1, s.Channels[i], h, w}
	}
	return shapes
}

func scaled(dim int, ratio float64) int {
	// 1080*0.4 is 432.00000000000006 in float64
	return int(math.Ceil(float64(dim)*ratio - 1e-9))
}
