package model

import (
	"fmt"
	"slices"
)

type TensorSpec struct {
	Name  string `json:"name"`
	Shape []int  `json:"shape"`
}

// ExportRequest is handed to the external export toolchain.
type ExportRequest struct {
	Variant         Variant      `json:"variant"`
	Refiner         Refiner      `json:"refiner"`
	Checkpoint      string       `json:"checkpoint,omitempty"`
	StrictLoad      bool         `json:"strictLoad"`
	Output          string       `json:"output"`
	Precision       string       `json:"precision"`
	Device          string       `json:"device"`
	Opset           int          `json:"opset"`
	ExportParams    bool         `json:"exportParams"`
	ConstantFolding bool         `json:"constantFolding"`
	Inputs          []TensorSpec `json:"inputs"`
	Outputs         []string     `json:"outputs"`
}

// Descriptor is the sidecar written next to an exported graph.
type Descriptor struct {
	Graph      string       `json:"graph"`
	Variant    Variant      `json:"variant"`
	Refiner    Refiner      `json:"refiner"`
	Checkpoint string       `json:"checkpoint,omitempty"`
	Opset      int          `json:"opset"`
	Signature  string       `json:"signature"`
	Schedule   Schedule     `json:"schedule"`
	Inputs     []TensorSpec `json:"inputs"`
	Outputs    []string     `json:"outputs"`
	CreatedAt  int64        `json:"createdAt"`
}

// InputSpecs binds the signature's input names to the schedule's shapes.
func InputSpecs(sig Signature, schedule Schedule) []TensorSpec {
	specs := []TensorSpec{{Name: sig.Image, Shape: schedule.ImageShape()}}
	for i, shape := range schedule.StateShapes() {
		specs = append(specs, TensorSpec{Name: sig.StateIn[i], Shape: shape})
	}
	return specs
}

// Check fails when the graph was exported for inputs other than the ones the
// runtime is about to feed it.
func (d Descriptor) Check(schedule Schedule, sig Signature) error {
	if d.Signature != "" && d.Signature != sig.Name {
		return fmt.Errorf("%w: graph %s was exported with signature %q, runtime uses %q",
			ErrShapeMismatch, d.Graph, d.Signature, sig.Name)
	}

	want := InputSpecs(sig, schedule)
	declared := make(map[string][]int, len(d.Inputs))
	for _, in := range d.Inputs {
		declared[in.Name] = in.Shape
	}

	for _, w := range want {
		got, ok := declared[w.Name]
		if !ok {
			return fmt.Errorf("%w: graph %s has no input %q", ErrShapeMismatch, d.Graph, w.Name)
		}
		if !slices.Equal(got, w.Shape) {
			return fmt.Errorf("%w: graph %s input %q is %v, runtime feeds %v",
				ErrShapeMismatch, d.Graph, w.Name, got, w.Shape)
		}
	}
	return nil
}
