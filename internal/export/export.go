// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export builds the downloadable artifact of a converted session
// and writes it out. The content is a fixed placeholder; nothing of the
// source document is encoded.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc-converter/internal/modes"
	"github.com/pdiddy/doc-converter/pkg/types"
)

const (
	// PlaceholderContent is the body of every exported file.
	PlaceholderContent = "Demo conversion file"

	// MimeType is the type of every exported file.
	MimeType = "text/plain"

	// defaultStem names the artifact when the session has no file.
	defaultStem = "converted"
)

// ErrNotConverted is returned when the session has no finished result.
var ErrNotConverted = errors.New("session is not converted")

// Artifact is a file ready to be saved.
type Artifact struct {
	Filename string `json:"filename" yaml:"filename"`
	MimeType string `json:"mime_type" yaml:"mime_type"`
	Content  []byte `json:"-" yaml:"-"`
}

// BuildArtifact names and fills the artifact for a converted session. The
// name is the uploaded file's name without its extension, plus the mode's
// export extension.
func BuildArtifact(s types.Snapshot) (Artifact, error) {
	if s.Status != types.StatusConverted {
		return Artifact{}, fmt.Errorf("%w: status is %s", ErrNotConverted, s.Status)
	}

	stem := defaultStem
	if s.File != nil {
		stem = Stem(s.File.Name)
	}
	return Artifact{
		Filename: stem + modes.ConfigOf(s.Mode).Extension,
		MimeType: MimeType,
		Content:  []byte(PlaceholderContent),
	}, nil
}

// Stem returns name without its final extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Save writes a into dir and returns the final path. The content goes to a
// temporary file first, which is renamed into place; the temporary file is
// removed on every path, including failures.
func Save(ctx context.Context, a Artifact, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(a.Content); err != nil {
		return "", fmt.Errorf("writing %s: %w", a.Filename, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("syncing %s: %w", a.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", a.Filename, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return "", fmt.Errorf("setting permissions on %s: %w", a.Filename, err)
	}

	dest := filepath.Join(dir, filepath.Base(a.Filename))
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", fmt.Errorf("saving %s: %w", a.Filename, err)
	}
	return dest, nil
}
