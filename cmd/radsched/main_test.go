package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func emptyBundleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"roster":[],"catalog":[],"envelope":[]}`), 0o600))
	return path
}

func TestRun_NoArgsIsIOFailure(t *testing.T) {
	var stderr bytes.Buffer
	code := run(nil, strings.NewReader(""), &bytes.Buffer{}, &stderr)
	require.Equal(t, exitIOFailure, code)
	require.Contains(t, stderr.String(), "Usage:")
}

func TestRun_UnknownCommandIsIOFailure(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"frobnicate"}, strings.NewReader(""), &bytes.Buffer{}, &stderr)
	require.Equal(t, exitIOFailure, code)
	require.Contains(t, stderr.String(), "unknown command")
}

func TestRun_HelpIsOK(t *testing.T) {
	var stdout bytes.Buffer
	code := run([]string{"help"}, strings.NewReader(""), &stdout, &bytes.Buffer{})
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout.String(), "build INPUT PREFS")
}

func TestRun_BuildMissingArgsIsIOFailure(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"build"}, strings.NewReader(""), &bytes.Buffer{}, &stderr)
	require.Equal(t, exitIOFailure, code)
	require.Contains(t, stderr.String(), "requires INPUT and PREFS")
}

func TestRun_BuildMissingFileIsIOFailure(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"build", "no-such-input.json", "no-such-prefs.json"}, strings.NewReader(""), &bytes.Buffer{}, &stderr)
	require.Equal(t, exitIOFailure, code)
	require.Contains(t, stderr.String(), "open input")
}

func TestRun_ValidateMissingArgIsIOFailure(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"validate"}, strings.NewReader(""), &bytes.Buffer{}, &stderr)
	require.Equal(t, exitIOFailure, code)
	require.Contains(t, stderr.String(), "requires an INPUT")
}

func TestRun_ValidateUnknownSourceIsIOFailure(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"validate", "-y", "2027", "-source", "xml", emptyBundleFile(t)}, strings.NewReader(""), &bytes.Buffer{}, &stderr)
	require.Equal(t, exitIOFailure, code)
	require.Contains(t, stderr.String(), `unknown -source "xml"`)
}

func TestRun_ValidatePostgresSourceFailsWithoutServer(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"validate", "-y", "2027", "-source", "postgres", "-pg-host", "127.0.0.1", "-pg-port", "1", emptyBundleFile(t)},
		strings.NewReader(""), &bytes.Buffer{}, &stderr)
	require.Equal(t, exitIOFailure, code)
	require.Contains(t, stderr.String(), "load roster")
}
