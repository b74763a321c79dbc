// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-converter/internal/export"
	"github.com/pdiddy/doc-converter/internal/journal"
	"github.com/pdiddy/doc-converter/internal/session"
	"github.com/pdiddy/doc-converter/pkg/types"
)

// runScript feeds script to a fresh shell and returns everything it printed.
func runScript(t *testing.T, cfg types.Config, script string) string {
	t.Helper()
	j, err := journal.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	o := session.New(cfg,
		session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		session.WithStageInterval(time.Millisecond),
		session.WithRecorder(j),
	)
	var out bytes.Buffer
	require.NoError(t, runShell(context.Background(), strings.NewReader(script), &out, o, j, cfg))
	return out.String()
}

func writePDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\n"), 0o644))
	return path
}

func TestShell_AcademicRunDownloadsMarkdown(t *testing.T) {
	in := t.TempDir()
	outDir := t.TempDir()
	pdf := writePDF(t, in, "paper.pdf")
	cfg := types.Config{OutputDir: outDir}.WithDefaults()

	out := runScript(t, cfg, strings.Join([]string{
		"mode academic",
		"select " + pdf,
		"start",
		"wait",
		"download",
		"history",
		"quit",
	}, "\n"))

	assert.Contains(t, out, "Mode: Research Papers")
	assert.Contains(t, out, "Selected paper.pdf")
	assert.Contains(t, out, "Extract Research Data...")
	assert.Contains(t, out, "Research data extracted successfully!")
	progressAt := strings.Index(out, "Extracting citations and equations... [####################] 100%")
	completeAt := strings.Index(out, "Research data extracted successfully!")
	require.NotEqual(t, -1, progressAt)
	assert.Less(t, progressAt, completeAt, "final progress line precedes the result panel")
	assert.Contains(t, out, "\n1 conversion\n")
	assert.NotContains(t, out, "error:")

	data, err := os.ReadFile(filepath.Join(outDir, "paper.md"))
	require.NoError(t, err)
	assert.Equal(t, export.PlaceholderContent, string(data))
}

func TestShell_RejectsNonPDF(t *testing.T) {
	in := t.TempDir()
	notes := filepath.Join(in, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("hi"), 0o644))

	out := runScript(t, types.Config{}.WithDefaults(), "select "+notes+"\nstatus\n")

	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "Status: idle")
}

func TestShell_CommandErrorsDoNotEndSession(t *testing.T) {
	out := runScript(t, types.Config{}.WithDefaults(), strings.Join([]string{
		"start",
		"download",
		"mode bogus",
		"frobnicate",
		"# comment",
		"history",
	}, "\n"))

	assert.Equal(t, 4, strings.Count(out, "error:"))
	assert.Contains(t, out, "unknown command \"frobnicate\"")
	assert.Contains(t, out, "No conversions yet.")
}

func TestShell_ResetCancelsRun(t *testing.T) {
	in := t.TempDir()
	pdf := writePDF(t, in, "report.pdf")
	cfg := types.Config{StageInterval: time.Hour}.WithDefaults()

	j, err := journal.Open()
	require.NoError(t, err)
	defer j.Close()
	o := session.New(cfg,
		session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		session.WithRecorder(j),
	)

	var out bytes.Buffer
	script := "select " + pdf + "\nstart\nreset\nwait\nstatus\n"
	require.NoError(t, runShell(context.Background(), strings.NewReader(script), &out, o, j, cfg))

	assert.Contains(t, out.String(), "Conversion canceled.")
	assert.Equal(t, types.StatusIdle, o.Snapshot().Status)

	entries, err := j.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestShell_HelpListsCommands(t *testing.T) {
	out := runScript(t, types.Config{}.WithDefaults(), "help\n")

	for _, cmd := range []string{"select <path>", "wait", "reset | another", "quit | exit"} {
		assert.Contains(t, out, cmd)
	}
	assert.Contains(t, shellCmd.Long, shellHelp)
}
