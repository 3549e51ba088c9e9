package binding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParameter_Defaults(t *testing.T) {
	p, err := NewParameter("name", Optional, nil)
	require.NoError(t, err)
	assert.Equal(t, "name", p.Name())
	assert.False(t, p.IsRequired())
	assert.True(t, p.IsOptional())
	assert.Nil(t, p.DefaultValue())
}

func TestNewParameter_Required(t *testing.T) {
	p, err := NewParameter("name", Required, nil)
	require.NoError(t, err)
	assert.True(t, p.IsRequired())
	assert.False(t, p.IsOptional())
}

func TestNewParameter_OptionalWithDefault(t *testing.T) {
	p, err := NewParameter("name", Optional, "default")
	require.NoError(t, err)
	assert.Equal(t, "default", p.DefaultValue())
}

func TestNewParameter_RequiredWithDefaultFails(t *testing.T) {
	_, err := NewParameter("name", Required, "default")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "must not have default values")
}

func TestNewParameter_ValidNames(t *testing.T) {
	for _, name := range []string{"a", "param1", "Param", "aB3c"} {
		p, err := NewParameter(name, Optional, nil)
		require.NoError(t, err, name)
		assert.Equal(t, !p.IsRequired(), p.IsOptional())
		assert.True(t, IsValidParameterName(name))
	}
}

func TestNewParameter_InvalidNames(t *testing.T) {
	for _, name := range []string{"", "1param", "param-1", "param_1", "my param", "päram", " a"} {
		_, err := NewParameter(name, Optional, nil)
		require.Error(t, err, "expected error for %q", name)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.False(t, IsValidParameterName(name))
	}
}

func TestMustParameter_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParameter("", Optional, nil) })
	assert.NotPanics(t, func() { MustParameter("ok", Required, nil) })
}
