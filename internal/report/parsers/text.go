// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"

	"github.com/appraisal-tools/report-qa/internal/report"
)

// TextParser passes already-extracted text through unchanged. It only
// handles sources that carry no file content.
type TextParser struct{}

// NewTextParser creates a new TextParser.
func NewTextParser() *TextParser {
	return &TextParser{}
}

func (p *TextParser) Name() string {
	return "text"
}

func (p *TextParser) CanHandle(source report.Source) bool {
	return len(source.Bytes) == 0 && source.Base64 == "" && source.Text != ""
}

func (p *TextParser) Parse(_ context.Context, source report.Source) (report.Extraction, error) {
	return report.Extraction{Text: source.Text}, nil
}

// Default returns the parsers used in production. More specific binary
// formats come before the text passthrough.
func Default() []report.DocumentParser {
	return []report.DocumentParser{
		NewPDFParser(),
		NewDOCXParser(),
		NewTextParser(),
	}
}
