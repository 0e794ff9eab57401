package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runTool(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Increment(t *testing.T) {
	dir := t.TempDir()
	prof := writeFile(t, dir, "p.json", `{"score":10,"name":"Ann"}`)
	patch := writeFile(t, dir, "d.yaml", "score: 5\nvisits: 1\n")

	code, out, errOut := runTool("-o", "increment", "--profile", prof, "--patch", patch)
	require.Equal(t, 0, code, errOut)
	assert.JSONEq(t, `{
		"profile": {"score":15,"name":"Ann","visits":1},
		"changes": {"score":{"oldValue":10,"newValue":15},"visits":{"newValue":1}}
	}`, out)
	assert.Contains(t, errOut, "patch applied")
}

func TestRun_DeleteWithConfig(t *testing.T) {
	dir := t.TempDir()
	prof := writeFile(t, dir, "p.yaml", "a: 1\nb: keep\n")
	patch := writeFile(t, dir, "d.json", `{"a":"DROP","b":"$delete"}`)
	cfg := writeFile(t, dir, "cfg.toml", "operation = \"delete\"\ndelete_marker = \"DROP\"\nindent = 2\nverbose = true\n")

	code, out, errOut := runTool("--config", cfg, "--profile", prof, "--patch", patch)
	require.Equal(t, 0, code, errOut)
	assert.JSONEq(t, `{"profile":{},"changes":{"a":{"oldValue":1},"b":{"oldValue":"keep"}}}`, out)
	assert.Contains(t, out, "\n  \"profile\"")
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	prof := writeFile(t, dir, "p.json", `{"n":1}`)
	patch := writeFile(t, dir, "d.json", `{"n":1}`)
	cfg := writeFile(t, dir, "cfg.toml", "operation = \"decrement\"\n")

	code, out, errOut := runTool("-c", cfg, "-o", "increment", "-p", prof, "-d", patch)
	require.Equal(t, 0, code, errOut)
	assert.JSONEq(t, `{"profile":{"n":2},"changes":{"n":{"oldValue":1,"newValue":2}}}`, out)
}

func TestRun_GetMarkerText(t *testing.T) {
	dir := t.TempDir()
	prof := writeFile(t, dir, "p.json", `{"name":"Ann"}`)
	patch := writeFile(t, dir, "d.json", `{"name":""}`)

	code, out, errOut := runTool("-o", "GET", "--get-marker", "?", "-p", prof, "-d", patch)
	require.Equal(t, 0, code, errOut)
	assert.JSONEq(t, `{"profile":{"name":"Ann"},"changes":{"name":{"oldValue":"Ann","newValue":"?"}}}`, out)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	prof := writeFile(t, dir, "p.json", `{"a":1}`)
	bad := writeFile(t, dir, "bad.json", `{"a":`)
	cfg := writeFile(t, dir, "bad.toml", "operation = \n")

	tests := []struct {
		name string
		args []string
	}{
		{"missing required", []string{"--profile", prof}},
		{"unknown operation", []string{"-o", "merge", "-p", prof, "-d", prof}},
		{"malformed patch", []string{"-p", prof, "-d", bad}},
		{"missing file", []string{"-p", prof, "-d", filepath.Join(dir, "nope.json")}},
		{"bad config", []string{"-c", cfg, "-p", prof, "-d", prof}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runTool(tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.NotEmpty(t, errOut)
		})
	}
}

func TestRun_Help(t *testing.T) {
	code, out, _ := runTool("--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "--operation")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func TestRun_OutputWriteFailure(t *testing.T) {
	dir := t.TempDir()
	prof := writeFile(t, dir, "p.json", `{"n":1}`)
	patch := writeFile(t, dir, "d.json", `{"n":1}`)

	var stderr bytes.Buffer
	code := run([]string{"-p", prof, "-d", patch}, failingWriter{}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "stdout closed")
}
