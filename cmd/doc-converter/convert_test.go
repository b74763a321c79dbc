// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-converter/internal/export"
	"github.com/pdiddy/doc-converter/internal/upload"
	"github.com/pdiddy/doc-converter/pkg/types"
)

// executeConvert runs the convert command with every flag pinned, since
// cobra keeps flag values between executions. Later args override the pins.
func executeConvert(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	base := []string{
		"convert",
		"--config=",
		"--mode=pro",
		"--stage-interval=1ms",
		"--output-dir=" + t.TempDir(),
		"--log-level=warn",
		"--format=text",
		"--no-download=false",
	}
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(base, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// progressLines returns the checkpoint lines of out, in order.
func progressLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "] ") && strings.HasSuffix(line, "%") {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestConvert_TextPrintsProgressAndDownloads(t *testing.T) {
	pdf := writePDF(t, t.TempDir(), "contract.pdf")
	outDir := t.TempDir()

	stdout, _, err := executeConvert(t, "--output-dir="+outDir, pdf)
	require.NoError(t, err)

	lines := progressLines(stdout)
	require.Len(t, lines, 5)
	for i, want := range []string{" 20%", " 40%", " 60%", " 80%", "100%"} {
		assert.True(t, strings.HasSuffix(lines[i], want), "line %d = %q", i, lines[i])
	}
	assert.Contains(t, stdout, "Tables and formatting preserved perfectly!")
	assert.Contains(t, stdout, "Download DOCX: "+filepath.Join(outDir, "contract.docx"))

	data, err := os.ReadFile(filepath.Join(outDir, "contract.docx"))
	require.NoError(t, err)
	assert.Equal(t, export.PlaceholderContent, string(data))
}

func TestConvert_JSONResultForPro(t *testing.T) {
	pdf := writePDF(t, t.TempDir(), "contract.pdf")
	outDir := t.TempDir()

	stdout, stderr, err := executeConvert(t, "--format=json", "--no-download", "--output-dir="+outDir, pdf)
	require.NoError(t, err)
	assert.Len(t, progressLines(stderr), 5, "progress goes to stderr for structured output")

	var snap types.Snapshot
	require.NoError(t, json.Unmarshal([]byte(stdout), &snap))
	assert.Equal(t, types.ModePro, snap.Mode)
	assert.Equal(t, types.StatusConverted, snap.Status)
	assert.Equal(t, 100, snap.Progress)
	require.NotNil(t, snap.Result)
	assert.Equal(t, []string{"pages", "tables", "images", "accuracy"}, snap.Result.FieldNames())
	accuracy, ok := snap.Result.Value("accuracy")
	require.True(t, ok)
	assert.Equal(t, 98.5, accuracy)
	assert.NotContains(t, stdout, `"complete"`)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "--no-download writes nothing")
}

func TestConvert_YAMLOutput(t *testing.T) {
	pdf := writePDF(t, t.TempDir(), "records.pdf")

	stdout, _, err := executeConvert(t, "--format=yaml", "--no-download", "--mode=secure", pdf)
	require.NoError(t, err)
	assert.Contains(t, stdout, "mode: secure")
	assert.Contains(t, stdout, "status: converted")
	assert.Contains(t, stdout, "complete: true")
}

func TestConvert_AcademicWritesMarkdown(t *testing.T) {
	pdf := writePDF(t, t.TempDir(), "paper.pdf")
	outDir := t.TempDir()

	stdout, _, err := executeConvert(t, "--mode=academic", "--output-dir="+outDir, pdf)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Download Markdown: "+filepath.Join(outDir, "paper.md"))

	_, err = os.Stat(filepath.Join(outDir, "paper.md"))
	require.NoError(t, err)
}

func TestConvert_RejectsNonPDF(t *testing.T) {
	notes := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("hi"), 0o644))

	_, _, err := executeConvert(t, notes)
	require.ErrorIs(t, err, upload.ErrInvalidMimeType)
}

func TestConvert_RejectsUnknownMode(t *testing.T) {
	pdf := writePDF(t, t.TempDir(), "contract.pdf")

	_, _, err := executeConvert(t, "--mode=draft", pdf)
	require.ErrorIs(t, err, types.ErrUnknownMode)
}

func TestConfigFlag_NamesSearchedFile(t *testing.T) {
	usage := rootCmd.PersistentFlags().Lookup("config").Usage
	assert.Contains(t, usage, "doc-converter.yaml")
	assert.NotContains(t, usage, "config.yaml")
}
