package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureNames(t *testing.T) {
	assert.Equal(t, []string{"img", "s1i", "s2i", "s3i", "s4i"}, StaticSignature.Inputs())
	assert.Equal(t, []string{"fgr", "alp", "s1o", "s2o", "s3o", "s4o"}, StaticSignature.Outputs())
	assert.Equal(t, []string{"src", "r1i", "r2i", "r3i", "r4i"}, RecurrentSignature.Inputs())
	assert.Equal(t, []string{"fgr", "pha", "r1o", "r2o", "r3o", "r4o"}, RecurrentSignature.Outputs())

	sig, err := LookupSignature("rvm")
	require.NoError(t, err)
	assert.Equal(t, RecurrentSignature, sig)

	_, err = LookupSignature("dynamic")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDescriptorCheck(t *testing.T) {
	exported := DefaultSchedule()
	d := Descriptor{
		Graph:     "rvm.onnx",
		Signature: StaticSignature.Name,
		Inputs:    InputSpecs(StaticSignature, exported),
		Outputs:   StaticSignature.Outputs(),
	}

	t.Run("same schedule", func(t *testing.T) {
		assert.NoError(t, d.Check(exported, StaticSignature))
	})

	t.Run("runtime ratio drift", func(t *testing.T) {
		runtime, err := NewSchedule(MobileNetV3, 1920, 1080, 0.125)
		require.NoError(t, err)
		err = d.Check(runtime, StaticSignature)
		assert.ErrorIs(t, err, ErrShapeMismatch)
		assert.Contains(t, err.Error(), "s1i")
	})

	t.Run("runtime resolution drift", func(t *testing.T) {
		runtime, err := NewSchedule(MobileNetV3, 1280, 720, 0.4)
		require.NoError(t, err)
		err = d.Check(runtime, StaticSignature)
		assert.ErrorIs(t, err, ErrShapeMismatch)
		assert.Contains(t, err.Error(), "img")
	})

	t.Run("signature drift", func(t *testing.T) {
		assert.ErrorIs(t, d.Check(exported, RecurrentSignature), ErrShapeMismatch)
	})
}
