// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-converter/pkg/types"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		wantErr  bool
	}{
		{name: "pdf accepted", mimeType: "application/pdf"},
		{name: "plain text rejected", mimeType: "text/plain", wantErr: true},
		{name: "word rejected", mimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", wantErr: true},
		{name: "empty type rejected", mimeType: "", wantErr: true},
		{name: "case differs", mimeType: "Application/PDF", wantErr: true},
		{name: "parameters not stripped", mimeType: "application/pdf; charset=binary", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := types.Candidate{Name: "contract.pdf", Size: 2048, MimeType: tt.mimeType}
			got, err := Validate(c)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, types.UploadedFile{Name: "contract.pdf", Size: 2048, MimeType: MimePDF}, got)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidMimeType))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, InvalidMimeType, verr.Kind)
			assert.Equal(t, tt.mimeType, verr.MimeType)
			assert.Equal(t, types.UploadedFile{}, got)
		})
	}
}

func TestValidate_SizeNotEnforced(t *testing.T) {
	c := types.Candidate{Name: "huge.pdf", Size: MaxUploadBytes * 4, MimeType: MimePDF}
	_, err := Validate(c)
	assert.NoError(t, err)
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectMimeType("contract.pdf"))
	assert.Equal(t, "application/pdf", DetectMimeType("/tmp/SCAN.PDF"))
	assert.Equal(t, "image/png", DetectMimeType("figure.png"))
	assert.Equal(t, "", DetectMimeType("README"))
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contract.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not really a pdf"), 0o644))

	c, err := FromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "contract.pdf", c.Name)
	assert.Equal(t, int64(len("not really a pdf")), c.Size)
	assert.Equal(t, MimePDF, c.MimeType)

	_, err = FromPath(filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)

	_, err = FromPath(dir)
	assert.Error(t, err)
}
