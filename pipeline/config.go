package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/khaledhikmat/vs-matting/model"
	"golang.org/x/xerrors"
)

type Mode string

const (
	// ModeComposite blends the foreground over the background color.
	ModeComposite Mode = "composite"
	// ModeAlpha writes the matte as a grayscale frame.
	ModeAlpha Mode = "alpha"
	// ModeMerge keeps the source pixels weighted by alpha over black.
	ModeMerge Mode = "merge"
)

var ErrInvalidConfig = xerrors.New("invalid matting config")

const DefaultOutputFPS = 25

// DefaultBackground is a light green in normalized RGB.
var DefaultBackground = [3]float32{0.47, 1.0, 0.6}

type Config struct {
	Schedule   model.Schedule
	Background [3]float32
	OutputFPS  float64
	Mode       Mode
}

func DefaultConfig() Config {
	return Config{
		Schedule:   model.DefaultSchedule(),
		Background: DefaultBackground,
		OutputFPS:  DefaultOutputFPS,
		Mode:       ModeComposite,
	}
}

func (c Config) Validate() error {
	if err := c.Schedule.Validate(); err != nil {
		return err
	}
	for i, v := range c.Background {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("%w: background channel %d is %v, want [0, 1]", ErrInvalidConfig, i, v)
		}
	}
	if !(c.OutputFPS >= 0) {
		return fmt.Errorf("%w: output fps %v", ErrInvalidConfig, c.OutputFPS)
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	return nil
}

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeComposite, ModeAlpha, ModeMerge:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: output mode %q (choose from composite, alpha, merge)", ErrInvalidConfig, s)
}

// ParseColor reads "r,g,b" either as normalized floats or as 0-255 integers
// when any component exceeds 1.
func ParseColor(s string) ([3]float32, error) {
	var c [3]float32
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return c, fmt.Errorf("%w: color %q must have three components", ErrInvalidConfig, s)
	}

	scale := float32(1)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return c, fmt.Errorf("%w: color %q: %v", ErrInvalidConfig, s, err)
		}
		if !(v >= 0 && v <= 255) {
			return c, fmt.Errorf("%w: color component %v out of range", ErrInvalidConfig, v)
		}
		if v > 1 {
			scale = 255
		}
		c[i] = float32(v)
	}
	for i := range c {
		c[i] /= scale
	}
	return c, nil
}
