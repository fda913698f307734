package model

import (
	"fmt"
	"slices"
)

// StateStages is the number of recurrent tensors carried between frames.
const StateStages = 4

// Tensor is a dense row-major float32 tensor in NCHW layout.
type Tensor struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"-"`
}

// NewTensor allocates a zero-filled tensor.
func NewTensor(shape ...int) Tensor {
	return Tensor{
		Shape: slices.Clone(shape),
		Data:  make([]float32, Volume(shape)),
	}
}

// Volume returns the element count of a shape.
func Volume(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func (t Tensor) HasShape(shape []int) bool {
	return slices.Equal(t.Shape, shape) && len(t.Data) == Volume(shape)
}

func (t Tensor) Clone() Tensor {
	return Tensor{
		Shape: slices.Clone(t.Shape),
		Data:  slices.Clone(t.Data),
	}
}

func (t Tensor) String() string {
	return fmt.Sprintf("tensor%v", t.Shape)
}

// State is the recurrent context handed from one inference call to the next.
type State [StateStages]Tensor

// ZeroState builds the initial all-zero state for the given stage shapes.
func ZeroState(shapes [StateStages][]int) State {
	var s State
	for i, shape := range shapes {
		s[i] = NewTensor(shape...)
	}
	return s
}

func (s State) Clone() State {
	var c State
	for i, t := range s {
		c[i] = t.Clone()
	}
	return c
}

// CheckShapes reports the first stage whose shape differs from the expected one.
func (s State) CheckShapes(shapes [StateStages][]int) error {
	for i, t := range s {
		if !t.HasShape(shapes[i]) {
			return fmt.Errorf("%w: state stage %d is %v (%d values), want %v",
				ErrShapeMismatch, i+1, t.Shape, len(t.Data), shapes[i])
		}
	}
	return nil
}

// Result is what one inference call produces.
type Result struct {
	Foreground Tensor
	Alpha      Tensor
	State      State
}
