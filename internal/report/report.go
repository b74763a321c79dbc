// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders session state for people (text) and for tools
// (YAML, JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-converter/internal/journal"
	"github.com/pdiddy/doc-converter/internal/modes"
	"github.com/pdiddy/doc-converter/internal/upload"
	"github.com/pdiddy/doc-converter/pkg/types"
)

// Format selects an output rendering.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported format %q: use text, yaml, or json", s)
}

// Write renders s in format f.
func Write(w io.Writer, f Format, s types.Snapshot) error {
	switch f {
	case FormatYAML:
		return WriteYAML(w, s)
	case FormatJSON:
		return WriteJSON(w, s)
	default:
		return WriteText(w, s)
	}
}

// WriteYAML renders s as a YAML document.
func WriteYAML(w io.Writer, s types.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON renders s as indented JSON.
func WriteJSON(w io.Writer, s types.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteText renders the session the way the converter page shows it: the
// file, the mode, and once converted, the result panel.
func WriteText(w io.Writer, s types.Snapshot) error {
	cfg := modes.ConfigOf(s.Mode)
	fmt.Fprintf(w, "Mode:   %s (%s)\n", cfg.Label, s.Mode)
	if s.File != nil {
		fmt.Fprintf(w, "File:   %s (%s)\n", s.File.Name, s.File.SizeMB())
	} else {
		fmt.Fprintf(w, "File:   none (PDF up to %d MB)\n", upload.MaxUploadBytes/1024/1024)
	}
	fmt.Fprintf(w, "Status: %s\n", s.Status)

	switch s.Status {
	case types.StatusConverting:
		fmt.Fprintln(w, ProgressLine(types.ProgressEvent{Mode: s.Mode, Status: s.Status, Progress: s.Progress}))
	case types.StatusConverted:
		if s.Result != nil {
			fmt.Fprintln(w)
			WriteResult(w, *s.Result)
		}
	}
	return nil
}

// WriteResult renders the result panel: the mode's completion message, then
// each field with its value, or the field labels and badges of a mode
// without metrics.
func WriteResult(w io.Writer, r types.ResultMetadata) {
	cfg := modes.ConfigOf(r.Mode)
	fmt.Fprintln(w, cfg.CompletionMessage)

	if len(r.Metrics) == 0 {
		for _, f := range modes.FieldsOf(r.Mode) {
			fmt.Fprintf(w, "  %s\n", f.Label)
		}
		if len(cfg.Badges) > 0 {
			fmt.Fprintf(w, "  %s\n", strings.Join(cfg.Badges, " | "))
		}
		return
	}

	for _, f := range modes.FieldsOf(r.Mode) {
		v, ok := r.Value(f.Name)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-22s %s%s\n", f.Label, FormatValue(v), f.Unit)
	}
}

// FormatValue renders a metric without trailing zeros (42, 98.5).
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const barWidth = 20

// ProgressLine renders a progress event as "caption [####----] NN%".
func ProgressLine(ev types.ProgressEvent) string {
	p := min(max(ev.Progress, 0), 100)
	filled := p * barWidth / 100
	bar := strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)
	return fmt.Sprintf("%s [%s] %3d%%", modes.ConfigOf(ev.Mode).ProgressCaption, bar, p)
}

// WriteModes lists every mode with its display data and schema.
func WriteModes(w io.Writer, current types.Mode) {
	fmt.Fprintf(w, "%-2s %-9s  %-17s  %-23s  %-7s  %-6s  %s\n",
		"", "Mode", "Label", "Tagline", "Accent", "Export", "Fields")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, m := range types.Modes() {
		cfg := modes.ConfigOf(m)
		marker := ""
		if m == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%-2s %-9s  %-17s  %-23s  %-7s  %-6s  %s\n",
			marker, m, cfg.Label, cfg.Tagline, cfg.Accent, cfg.Extension,
			strings.Join(modes.SchemaOf(m), ", "))
	}
}

// WriteHistory lists journal entries, newest first.
func WriteHistory(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions yet.")
		return
	}
	fmt.Fprintf(w, "%-20s  %-9s  %-30s  %s\n", "Completed", "Mode", "File", "Result")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, e := range entries {
		fmt.Fprintf(w, "%-20s  %-9s  %-30s  %s\n",
			e.CompletedAt.Local().Format("2006-01-02 15:04:05"), e.Mode, truncate(e.FileName, 30), summary(e.Result))
	}
	if len(entries) == 1 {
		fmt.Fprintln(w, "\n1 conversion")
	} else {
		fmt.Fprintf(w, "\n%d conversions\n", len(entries))
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func summary(r types.ResultMetadata) string {
	if len(r.Metrics) == 0 {
		return "complete"
	}
	parts := make([]string, len(r.Metrics))
	for i, m := range r.Metrics {
		parts[i] = m.Name + "=" + FormatValue(m.Value)
	}
	return strings.Join(parts, " ")
}
