package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustRoundTripToMap[T any](t *testing.T, in []byte, v *T) map[string]any {
	t.Helper()
	require.NoError(t, json.Unmarshal(in, v))
	out, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	return m
}

func assertPreservedExtensionAndUnknown(t *testing.T, outMap map[string]any) {
	t.Helper()
	require.Equal(t, "extensionFieldValue", outMap["x-extensionField"])
	unknownField, ok := outMap["unknownField"].(map[string]any)
	require.True(t, ok, "expected unknownField preserved as object, got %#v", outMap["unknownField"])
	require.Equal(t, "unknownFieldValue", unknownField["value"])
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func mustParse(t *testing.T, doc string) Manifest {
	t.Helper()
	var m Manifest
	require.NoError(t, json.Unmarshal([]byte(doc), &m))
	return m
}
