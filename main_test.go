package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starmap/internal/catalog"
)

func writeCatalog(t *testing.T, entities []catalog.Entity, trailing []byte) string {
	t.Helper()
	var buf bytes.Buffer
	for _, e := range entities {
		require.NoError(t, catalog.EncodeRecord(&buf, e, 0))
	}
	buf.Write(trailing)

	path := filepath.Join(t.TempDir(), "catalog.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootRequiresOneArgument(t *testing.T) {
	_, err := execute(t)
	require.Error(t, err)

	_, err = execute(t, "a.bin", "b.bin")
	require.Error(t, err)
}

func TestRootMissingFile(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing.bin"), "--no-view")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog")
}

func TestRootPrintsEntriesAndSkipsMalformed(t *testing.T) {
	path := writeCatalog(t, []catalog.Entity{
		{X: 10, Y: -20, Z: 30, Index: 1, Name: "Sol", TypeTag: "S02"},
		{X: 1, Y: -2, Z: 3, Index: 2, Name: "Earth", TypeTag: "P03"},
	}, []byte("short"))

	out, err := execute(t, path, "--no-view")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "Star/Planet: [1] 10 -20 30 Sol 1 S02", lines[0])
	assert.Equal(t, "Star/Planet: [2] 1 -2 3 Earth 2 P03", lines[1])
}

func TestRootExportJSON(t *testing.T) {
	path := writeCatalog(t, []catalog.Entity{
		{X: 10, Y: -20, Z: 30, Index: 1, Name: "Sol", TypeTag: "S02"},
	}, nil)

	out, err := execute(t, path, "--no-view", "--quiet", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Records  int `json:"records"`
		Entities []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"entities"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1, doc.Records)
	require.Len(t, doc.Entities, 1)
	assert.Equal(t, "Sol", doc.Entities[0].Name)
	assert.Equal(t, "star", doc.Entities[0].Kind)
}

func TestRootRejectsUnknownFormat(t *testing.T) {
	path := writeCatalog(t, nil, nil)
	_, err := execute(t, path, "--no-view", "--format", "xml")
	require.Error(t, err)
}
