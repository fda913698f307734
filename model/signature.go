package model

import (
	"fmt"
	"sort"
)

// Signature names the inputs and outputs of an exported graph.
type Signature struct {
	Name       string              `json:"name"`
	Image      string              `json:"image"`
	StateIn    [StateStages]string `json:"stateIn"`
	Foreground string              `json:"foreground"`
	Alpha      string              `json:"alpha"`
	StateOut   [StateStages]string `json:"stateOut"`
}

var (
	StaticSignature = Signature{
		Name:       "static",
		Image:      "img",
		StateIn:    [StateStages]string{"s1i", "s2i", "s3i", "s4i"},
		Foreground: "fgr",
		Alpha:      "alp",
		StateOut:   [StateStages]string{"s1o", "s2o", "s3o", "s4o"},
	}

	RecurrentSignature = Signature{
		Name:       "rvm",
		Image:      "src",
		StateIn:    [StateStages]string{"r1i", "r2i", "r3i", "r4i"},
		Foreground: "fgr",
		Alpha:      "pha",
		StateOut:   [StateStages]string{"r1o", "r2o", "r3o", "r4o"},
	}
)

var signatures = map[string]Signature{
	StaticSignature.Name:    StaticSignature,
	RecurrentSignature.Name: RecurrentSignature,
}

func LookupSignature(name string) (Signature, error) {
	sig, ok := signatures[name]
	if !ok {
		names := make([]string, 0, len(signatures))
		for n := range signatures {
			names = append(names, n)
		}
		sort.Strings(names)
		return Signature{}, fmt.Errorf("%w: %q (choose from %v)", ErrInvalidSignature, name, names)
	}
	return sig, nil
}

// Inputs lists the image input followed by the four state inputs.
func (s Signature) Inputs() []string {
	return append([]string{s.Image}, s.StateIn[:]...)
}

// Outputs lists foreground, alpha and the four state outputs, in the order
// the runtime fetches them.
func (s Signature) Outputs() []string {
	return append([]string{s.Foreground, s.Alpha}, s.StateOut[:]...)
}
