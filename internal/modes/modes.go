// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package modes is the registry of conversion modes. Each mode is a Profile
// carrying its display config, its result schema, and its result synthesis;
// Lookup is the single dispatch point from a Mode to its Profile.
package modes

import (
	"fmt"

	"github.com/pdiddy/doc-converter/pkg/types"
)

// Profile is the behaviour of one conversion mode.
type Profile interface {
	// Mode returns the identifier this profile serves.
	Mode() types.Mode

	// Config returns the display config.
	Config() types.ModeConfig

	// Fields returns the ordered result schema with display labels.
	Fields() []types.Field

	// Synthesize returns the mode's fixed demonstration result. It never
	// looks at the uploaded file.
	Synthesize() types.ResultMetadata
}

var registry = map[types.Mode]Profile{
	types.ModePro:      proProfile{},
	types.ModeAcademic: academicProfile{},
	types.ModeSecure:   secureProfile{},
}

// Lookup returns the profile for m. Modes come from the closed set in
// package types, so an unknown mode is a programming error and panics.
func Lookup(m types.Mode) Profile {
	p, ok := registry[m]
	if !ok {
		panic(fmt.Sprintf("modes: no profile registered for mode %q", m))
	}
	return p
}

// SchemaOf returns the ordered result field names of m. The slice is a
// fresh copy on every call.
func SchemaOf(m types.Mode) []string {
	fields := Lookup(m).Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// ConfigOf returns the display config of m.
func ConfigOf(m types.Mode) types.ModeConfig {
	return Lookup(m).Config()
}

// FieldsOf returns the result schema of m with display labels.
func FieldsOf(m types.Mode) []types.Field {
	return Lookup(m).Fields()
}
