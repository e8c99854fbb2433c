package classifier

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadLabelsInverts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "class_indices.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cat": 0, "dog": 1, "bird": 2}`), 0o644))

	labels, err := LoadLabels(path, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, "cat", labels.Name(0))
	require.Equal(t, "dog", labels.Name(1))
	require.Equal(t, "bird", labels.Name(2))
	require.Equal(t, 3, labels.Size())
}

func TestLabelsUnknownIndex(t *testing.T) {
	labels := NewLabels(map[string]int{"cat": 0, "dog": 2}, zerolog.Nop())
	require.Equal(t, "Unknown_1", labels.Name(1))
	require.Equal(t, "Unknown_7", labels.Name(7))
	require.Equal(t, 3, labels.Size())
}

func TestLabelsDuplicateIndexWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	labels := NewLabels(map[string]int{"zebra": 0, "antelope": 0, "lion": 1}, logger)
	require.Equal(t, "antelope", labels.Name(0))
	require.Equal(t, "lion", labels.Name(1))
	require.Contains(t, buf.String(), "duplicate class index")
	require.Contains(t, buf.String(), `"dropped":"zebra"`)
}

func TestLoadLabelsErrors(t *testing.T) {
	_, err := LoadLabels(filepath.Join(t.TempDir(), "missing.json"), zerolog.Nop())
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`["cat"]`), 0o644))
	_, err = LoadLabels(path, zerolog.Nop())
	require.Error(t, err)
}
