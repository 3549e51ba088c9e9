package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedRange(t *testing.T) {
	min, max := SupportedRange()
	require.NotEmpty(t, min)
	require.NotEmpty(t, max)

	minParsed, err := parseVersion(min)
	require.NoError(t, err)
	maxParsed, err := parseVersion(max)
	require.NoError(t, err)
	assert.LessOrEqual(t, minParsed.compare(maxParsed), 0, "min (%s) should be <= max (%s)", min, max)
}

func TestIsSupportedVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    bool
		wantErr bool
	}{
		{name: "exact min version", version: MinSupportedVersion, want: true},
		{name: "exact max version", version: MaxTestedVersion, want: true},
		{name: "version too old", version: "0.9.9", want: false},
		{name: "future minor version", version: "1.1.0", want: false},
		{name: "future major version", version: "2.0.0", want: false},
		{name: "invalid version - empty", version: "", wantErr: true},
		{name: "invalid version - not semver", version: "1.0", wantErr: true},
		{name: "invalid version - letters", version: "a.b.c", wantErr: true},
		{name: "invalid version - negative", version: "-1.0.0", wantErr: true},
		{name: "invalid version - leading zero", version: "01.0.0", wantErr: true},
		{name: "invalid version - whitespace", version: " 1.0.0 ", wantErr: true},
		{name: "invalid version - prerelease", version: "1.0.0-beta", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsSupportedVersion(tt.version)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.2.0", "1.1.9", 1},
		{"2.0.0", "10.0.0", -1},
	}
	for _, tt := range tests {
		a, err := parseVersion(tt.a)
		require.NoError(t, err)
		b, err := parseVersion(tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, a.compare(b), "%s vs %s", tt.a, tt.b)
	}
}
