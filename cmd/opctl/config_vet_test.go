package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/topology/internal/testutil"
)

func TestConfigVet_ValidTopologyCleanExit(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "pipeline.toml",
		testutil.SourceFragment("in", "stdin", []string{"log"})+
			testutil.SinkFragment("out", "console", []string{"in"}))

	cmd := newConfigVetCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path})

	require.NoError(t, cmd.Execute())
}

func TestConfigVet_DanglingInputReportsError(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "pipeline.toml",
		testutil.SinkFragment("out", "console", []string{"missing"}))

	var stdout bytes.Buffer
	cmd := newConfigVetCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path})

	assert.Error(t, cmd.Execute())
}

func TestConfigVet_MissingConfigFlagErrors(t *testing.T) {
	cmd := newConfigVetCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of")
}

func TestConfigVet_NonexistentFileErrors(t *testing.T) {
	cmd := newConfigVetCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.toml")})

	assert.Error(t, cmd.Execute())
}

func TestConfigVet_SurfacesWarningsButStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	// An orphan source (no consumer) compiles clean but produces a warning.
	path := testutil.WriteFile(t, dir, "pipeline.toml",
		testutil.SourceFragment("orphan", "stdin", []string{"log"}))

	cmd := newConfigVetCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "--verbose"})

	require.NoError(t, cmd.Execute())
}
