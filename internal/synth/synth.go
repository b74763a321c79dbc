// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synth produces the result metadata of a finished conversion run.
// Results depend only on the mode; the source file is not consulted.
package synth

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pdiddy/doc-converter/internal/modes"
	"github.com/pdiddy/doc-converter/pkg/types"
)

// ErrSchemaMismatch is returned when a result's fields differ from the
// mode's schema.
var ErrSchemaMismatch = errors.New("result does not match mode schema")

// Synthesize returns the result for mode m, checked against m's schema.
func Synthesize(m types.Mode) (types.ResultMetadata, error) {
	result := modes.Lookup(m).Synthesize()
	if err := Validate(result, modes.SchemaOf(m)); err != nil {
		return types.ResultMetadata{}, fmt.Errorf("synthesizing %s result: %w", m, err)
	}
	return result, nil
}

// Validate checks that result's field set equals schema exactly, in order.
func Validate(result types.ResultMetadata, schema []string) error {
	got := result.FieldNames()
	if !slices.Equal(got, schema) {
		return fmt.Errorf("%w: fields %v, schema %v", ErrSchemaMismatch, got, schema)
	}
	return nil
}
