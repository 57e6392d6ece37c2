package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flags are package-level; reset them so tests stay independent.
	configFile = ""
	debug = false
	noWatch = false
	swcBin = ""

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestArgArity(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no_args", args: []string{}},
		{name: "two_args", args: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, out, "Usage:")
		})
	}
}

func TestMissingRootFails(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing"), "--no-watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening root directory")
}

func TestBadExplicitConfigFails(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "--no-watch", "--config", filepath.Join(dir, "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestNoWatchPassOverEmptyTree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# hi"), 0o644))

	// No .ts files means the transformer binary is never invoked, so the
	// full CLI path can run without swc installed.
	_, err := execute(t, dir, "--no-watch")
	require.NoError(t, err)
}
