package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResourceBinding(t *testing.T) {
	b, err := NewResourceBinding("/app/trans/*.xlf", fooType, map[string]any{"locale": "en"})
	require.NoError(t, err)

	assert.Equal(t, "/app/trans/*.xlf", b.Query())
	assert.Equal(t, DefaultQueryLanguage, b.Language())
	assert.Equal(t, CapabilityResource, b.Capability())
	assert.Equal(t, fooType, b.TypeName())
}

func TestNewResourceBinding_WithLanguage(t *testing.T) {
	b, err := NewResourceBinding("//trans", fooType, nil, WithLanguage("xpath"))
	require.NoError(t, err)
	assert.Equal(t, "xpath", b.Language())
}

func TestNewResourceBinding_RejectsEmptyQueryOrLanguage(t *testing.T) {
	_, err := NewResourceBinding("", fooType, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewResourceBinding("/path", fooType, nil, WithLanguage(" "))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewClassBinding(t *testing.T) {
	b, err := NewClassBinding(`Acme\Plugin\Foo`, fooType, nil)
	require.NoError(t, err)
	assert.Equal(t, `Acme\Plugin\Foo`, b.ClassName())
	assert.Equal(t, CapabilityClass, b.Capability())
}

func TestNewClassBinding_RejectsInvalidClassName(t *testing.T) {
	for _, name := range []string{"", " ", "Acme Foo"} {
		_, err := NewClassBinding(name, fooType, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument, name)
	}
}
