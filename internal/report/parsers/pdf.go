// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/appraisal-tools/report-qa/internal/report"
	"github.com/ledongthuc/pdf"
)

// PDFParser extracts plain text and the native page count from a binary PDF.
// Any binary source that is not a ZIP container is handed to it.
type PDFParser struct{}

// NewPDFParser creates a new PDFParser.
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

func (p *PDFParser) Name() string {
	return "pdf"
}

func (p *PDFParser) CanHandle(source report.Source) bool {
	return len(source.Bytes) > 0 && !isZip(source.Bytes)
}

func (p *PDFParser) Parse(ctx context.Context, source report.Source) (report.Extraction, error) {
	if err := ctx.Err(); err != nil {
		return report.Extraction{}, err
	}

	r, err := pdf.NewReader(bytes.NewReader(source.Bytes), int64(len(source.Bytes)))
	if err != nil {
		return report.Extraction{}, fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return report.Extraction{}, fmt.Errorf("failed to extract PDF text: %w", err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return report.Extraction{}, fmt.Errorf("failed to read PDF text: %w", err)
	}

	return report.Extraction{
		Text:        string(text),
		NativePages: r.NumPage(),
	}, nil
}

var zipMagic = []byte("PK\x03\x04")

func isZip(b []byte) bool {
	return bytes.HasPrefix(b, zipMagic)
}
