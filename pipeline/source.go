package pipeline

import (
	"image"
	"io"
)

type stillSource struct {
	img  *image.RGBA
	read bool
}

// NewStillSource yields img once and then io.EOF. Single images go through
// the same loop as video, starting from the zero state.
func NewStillSource(img *image.RGBA) Source {
	return &stillSource{img: img}
}

func (s *stillSource) Read() (*image.RGBA, error) {
	if s.read || s.img == nil {
		return nil, io.EOF
	}
	s.read = true
	return s.img, nil
}

func (s *stillSource) FrameCount() int {
	return 1
}

func (s *stillSource) Close() error {
	s.img = nil
	return nil
}
