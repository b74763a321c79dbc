// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared records of the doc-converter workflow:
// conversion modes, uploaded files, session snapshots, result metadata,
// progress events, and configuration.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Mode identifies a conversion profile. The set is closed: only the
// constants below are valid.
type Mode string

const (
	ModePro      Mode = "pro"
	ModeAcademic Mode = "academic"
	ModeSecure   Mode = "secure"
)

// DefaultMode is the mode a fresh session starts in.
const DefaultMode = ModePro

// ErrUnknownMode is returned by ParseMode for input outside the closed set.
var ErrUnknownMode = errors.New("unknown conversion mode")

// Modes returns every mode in display order.
func Modes() []Mode {
	return []Mode{ModePro, ModeAcademic, ModeSecure}
}

// Valid reports whether m is a member of the closed set.
func (m Mode) Valid() bool {
	switch m {
	case ModePro, ModeAcademic, ModeSecure:
		return true
	}
	return false
}

func (m Mode) String() string { return string(m) }

// ParseMode maps user input to a Mode, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownMode, s, modeList())
	}
	return m, nil
}

func modeList() string {
	names := make([]string, 0, 3)
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

// ModeConfig holds the display data of a mode.
type ModeConfig struct {
	// Label is the mode card title (e.g. "Complex Tables").
	Label string `json:"label" yaml:"label"`

	// Tagline is the short line under the label (e.g. "Legal & Financial Docs").
	Tagline string `json:"tagline" yaml:"tagline"`

	// Accent names the mode's highlight colour.
	Accent string `json:"accent" yaml:"accent"`

	// ActionLabel is the caption of the start action.
	ActionLabel string `json:"action_label" yaml:"action_label"`

	// ProgressCaption is shown next to the percentage while converting.
	ProgressCaption string `json:"progress_caption" yaml:"progress_caption"`

	// CompletionMessage is shown once the run has converted.
	CompletionMessage string `json:"completion_message" yaml:"completion_message"`

	// DownloadLabel is the caption of the download action.
	DownloadLabel string `json:"download_label" yaml:"download_label"`

	// Extension is the export file extension, including the dot.
	Extension string `json:"extension" yaml:"extension"`

	// Badges lists trust badges shown with the result panel, if any.
	Badges []string `json:"badges,omitempty" yaml:"badges,omitempty"`
}

// Field describes one entry of a mode's result schema.
type Field struct {
	// Name is the schema key (e.g. "pages").
	Name string `json:"name" yaml:"name"`

	// Label is the display caption (e.g. "Pages Converted").
	Label string `json:"label" yaml:"label"`

	// Unit is appended to the displayed value (e.g. "%").
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`
}
