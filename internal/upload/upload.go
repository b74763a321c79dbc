// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upload validates candidate files before they enter a session.
// Only the caller-declared MIME type is checked; file contents are never
// opened, so the check can be spoofed by mislabelling a file.
package upload

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc-converter/pkg/types"
)

// MimePDF is the only accepted declared type.
const MimePDF = "application/pdf"

// MaxUploadBytes is the advertised upload limit. It is shown to users but
// not enforced by Validate.
const MaxUploadBytes int64 = 50 * 1024 * 1024

// Kind classifies a validation failure.
type Kind string

// InvalidMimeType means the declared type is not application/pdf.
const InvalidMimeType Kind = "InvalidMimeType"

// ErrInvalidMimeType matches any ValidationError of kind InvalidMimeType
// via errors.Is.
var ErrInvalidMimeType = errors.New("file is not a PDF")

// ValidationError describes why a candidate was rejected.
type ValidationError struct {
	Kind     Kind
	Name     string
	MimeType string
}

func (e *ValidationError) Error() string {
	mt := e.MimeType
	if mt == "" {
		mt = "unknown type"
	}
	return fmt.Sprintf("%s: %s is %s, want %s", e.Kind, e.Name, mt, MimePDF)
}

// Is lets errors.Is match the sentinel for this error's kind.
func (e *ValidationError) Is(target error) bool {
	return e.Kind == InvalidMimeType && target == ErrInvalidMimeType
}

// Validate accepts c only when its declared MIME type is application/pdf.
func Validate(c types.Candidate) (types.UploadedFile, error) {
	if c.MimeType != MimePDF {
		return types.UploadedFile{}, &ValidationError{
			Kind:     InvalidMimeType,
			Name:     c.Name,
			MimeType: c.MimeType,
		}
	}
	return types.UploadedFile{
		Name:     c.Name,
		Size:     c.Size,
		MimeType: c.MimeType,
	}, nil
}

// DetectMimeType derives a declared type from the file extension, the same
// way a browser labels a picked file. It does not open the file.
func DetectMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	t := mime.TypeByExtension(ext)
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

// FromPath builds a candidate for the file at path. Only the name, the size
// from the file's metadata, and the extension-derived type are used.
func FromPath(path string) (types.Candidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.Candidate{}, fmt.Errorf("reading file info for %s: %w", path, err)
	}
	if info.IsDir() {
		return types.Candidate{}, fmt.Errorf("%s is a directory", path)
	}
	return types.Candidate{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MimeType: DetectMimeType(path),
	}, nil
}
