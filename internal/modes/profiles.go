// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package modes

import "github.com/pdiddy/doc-converter/pkg/types"

const (
	extDOCX     = ".docx"
	extMarkdown = ".md"
)

// metrics builds an ordered metric list from parallel name/value slices
// taken from a profile's own schema.
func metrics(fields []types.Field, values ...float64) []types.Metric {
	out := make([]types.Metric, len(fields))
	for i, f := range fields {
		out[i] = types.Metric{Name: f.Name, Value: values[i]}
	}
	return out
}

// proProfile targets legal and financial documents with complex tables.
type proProfile struct{}

func (proProfile) Mode() types.Mode { return types.ModePro }

func (proProfile) Config() types.ModeConfig {
	return types.ModeConfig{
		Label:             "Complex Tables",
		Tagline:           "Legal & Financial Docs",
		Accent:            "blue",
		ActionLabel:       "Convert to Editable DOCX",
		ProgressCaption:   "Preserving table layouts and formatting...",
		CompletionMessage: "Tables and formatting preserved perfectly!",
		DownloadLabel:     "Download DOCX",
		Extension:         extDOCX,
	}
}

func (proProfile) Fields() []types.Field {
	return []types.Field{
		{Name: "pages", Label: "Pages Converted"},
		{Name: "tables", Label: "Tables Preserved"},
		{Name: "images", Label: "Images Intact"},
		{Name: "accuracy", Label: "Format Accuracy", Unit: "%"},
	}
}

func (p proProfile) Synthesize() types.ResultMetadata {
	return types.ResultMetadata{
		Mode:    types.ModePro,
		Metrics: metrics(p.Fields(), 42, 8, 5, 98.5),
	}
}

// academicProfile targets research papers.
type academicProfile struct{}

func (academicProfile) Mode() types.Mode { return types.ModeAcademic }

func (academicProfile) Config() types.ModeConfig {
	return types.ModeConfig{
		Label:             "Research Papers",
		Tagline:           "Citations & Equations",
		Accent:            "purple",
		ActionLabel:       "Extract Research Data",
		ProgressCaption:   "Extracting citations and equations...",
		CompletionMessage: "Research data extracted successfully!",
		DownloadLabel:     "Download Markdown",
		Extension:         extMarkdown,
	}
}

func (academicProfile) Fields() []types.Field {
	return []types.Field{
		{Name: "citations", Label: "Citations Extracted"},
		{Name: "equations", Label: "LaTeX Equations"},
		{Name: "footnotes", Label: "Footnotes"},
		{Name: "references", Label: "References"},
	}
}

func (p academicProfile) Synthesize() types.ResultMetadata {
	return types.ResultMetadata{
		Mode:    types.ModeAcademic,
		Metrics: metrics(p.Fields(), 25, 12, 18, 35),
	}
}

// secureProfile reports only completion; there are no counts to show.
type secureProfile struct{}

func (secureProfile) Mode() types.Mode { return types.ModeSecure }

func (secureProfile) Config() types.ModeConfig {
	return types.ModeConfig{
		Label:             "Secure & Private",
		Tagline:           "HIPAA/GDPR Compliant",
		Accent:            "green",
		ActionLabel:       "Convert Securely (No Upload)",
		ProgressCaption:   "Securely converting (client-side only)...",
		CompletionMessage: "Secure conversion complete!",
		DownloadLabel:     "Download DOCX",
		Extension:         extDOCX,
		Badges:            []string{"Zero Upload", "GDPR Safe", "HIPAA Ready", "No Tracking"},
	}
}

func (secureProfile) Fields() []types.Field {
	return []types.Field{
		{Name: types.CompleteField, Label: "Client-Side Processing Complete"},
	}
}

func (secureProfile) Synthesize() types.ResultMetadata {
	return types.ResultMetadata{
		Mode:     types.ModeSecure,
		Complete: true,
	}
}
