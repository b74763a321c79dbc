// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Status is the lifecycle state of the conversion session.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidated  Status = "validated"
	StatusConverting Status = "converting"
	StatusConverted  Status = "converted"
)

// Candidate is a file offered for upload, before validation. MimeType is the
// type reported by the caller; the file contents are never read.
type Candidate struct {
	Name     string `json:"name" yaml:"name"`
	Size     int64  `json:"size" yaml:"size"`
	MimeType string `json:"mime_type" yaml:"mime_type"`
}

// UploadedFile is a candidate that passed validation.
type UploadedFile struct {
	Name     string `json:"name" yaml:"name"`
	Size     int64  `json:"size" yaml:"size"`
	MimeType string `json:"mime_type" yaml:"mime_type"`
}

// SizeMB renders the size in mebibytes with two decimals.
func (f UploadedFile) SizeMB() string {
	return fmt.Sprintf("%.2f MB", float64(f.Size)/1024/1024)
}

// Metric is one numeric entry of a result.
type Metric struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// CompleteField is the schema key of the completion flag. Modes without
// numeric results report only this field.
const CompleteField = "complete"

// ResultMetadata is the synthetic summary produced at the end of a run.
// Metrics are kept in schema order. A result with no metrics reports its
// completion flag as its only field; metric results leave Complete unset.
type ResultMetadata struct {
	Mode     Mode     `json:"mode" yaml:"mode"`
	Metrics  []Metric `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Complete bool     `json:"complete,omitempty" yaml:"complete,omitempty"`
}

// FieldNames returns the result's field set in order.
func (r ResultMetadata) FieldNames() []string {
	if len(r.Metrics) == 0 {
		return []string{CompleteField}
	}
	names := make([]string, len(r.Metrics))
	for i, m := range r.Metrics {
		names[i] = m.Name
	}
	return names
}

// Value returns the metric named name.
func (r ResultMetadata) Value(name string) (float64, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// Snapshot is an immutable copy of the session record.
type Snapshot struct {
	Mode     Mode            `json:"mode" yaml:"mode"`
	Status   Status          `json:"status" yaml:"status"`
	Progress int             `json:"progress" yaml:"progress"`
	File     *UploadedFile   `json:"file,omitempty" yaml:"file,omitempty"`
	Result   *ResultMetadata `json:"result,omitempty" yaml:"result,omitempty"`

	// RunID identifies the last run started in this session, if any.
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

// ProgressEvent is delivered to session subscribers on every state change.
type ProgressEvent struct {
	RunID    string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Mode     Mode   `json:"mode" yaml:"mode"`
	Status   Status `json:"status" yaml:"status"`
	Progress int    `json:"progress" yaml:"progress"`
}
