package typename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SplitsNamespace(t *testing.T) {
	n, err := Parse("acme/blog/translations")
	require.NoError(t, err)
	assert.Equal(t, "acme/blog", n.Namespace)
	assert.Equal(t, "translations", n.Short)
	assert.Equal(t, "acme/blog/translations", n.String())
}

func TestParse_BackslashNamespace(t *testing.T) {
	n, err := Parse(`Acme\Plugin\Foo`)
	require.NoError(t, err)
	assert.Equal(t, `Acme\Plugin`, n.Namespace)
	assert.Equal(t, "Foo", n.Short)
}

func TestParse_SingleSegment(t *testing.T) {
	n, err := Parse("Foo")
	require.NoError(t, err)
	assert.Empty(t, n.Namespace)
	assert.Equal(t, "Foo", n.Short)
}

func TestParse_PreservesCase(t *testing.T) {
	n, err := Parse("Acme/Foo")
	require.NoError(t, err)
	assert.Equal(t, "Acme/Foo", n.String())
}

func TestParse_RejectsInvalid(t *testing.T) {
	cases := []string{
		"",
		" ",
		"foo bar",
		"/foo",
		"foo/",
		"foo//bar",
		"1foo",
		"foo/1bar",
		"foo\n",
		"föo",
	}
	for _, c := range cases {
		_, err := Parse(c)
		assert.Error(t, err, "expected error for %q", c)
		assert.False(t, IsValid(c), c)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("acme/enum-values"))
	assert.NoError(t, Validate("_private.v2"))
	assert.Error(t, Validate("-leading"))
}
