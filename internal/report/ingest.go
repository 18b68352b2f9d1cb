// SPDX-License-Identifier: Apache-2.0

package report

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// pageFooterPattern matches "עמוד N מתוך M" and "page N of M" footers.
var pageFooterPattern = regexp.MustCompile(`(?i)(?:עמוד|page)\s*(\d+)\s*(?:מתוך|of)\s*(\d+)`)

// SegmentPages splits text into pages, closing a page after every footer line.
// Text without footers becomes a single page.
func SegmentPages(text string) []Page {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var pages []Page
	var current []string

	flush := func() {
		pages = append(pages, Page{
			PageNumber: len(pages) + 1,
			Text:       strings.Join(current, "\n"),
			Lines:      current,
		})
		current = nil
	}

	for _, line := range lines {
		current = append(current, line)
		if pageFooterPattern.MatchString(line) {
			flush()
		}
	}
	if len(pages) == 0 || strings.TrimSpace(strings.Join(current, "\n")) != "" {
		flush()
	}

	return pages
}

// Ingest builds the ParsedDocument for one validation. It never fails: an
// extraction error leaves the supplied text in place with no native page count.
func (v *Validator) Ingest(ctx context.Context, in Inputs) ParsedDocument {
	source := Source{Bytes: in.FileBytes, Base64: in.FileBase64, Text: in.TextExtracted}

	text := in.TextExtracted
	nativePages := 0
	if parser, err := v.selectParser(source); err == nil {
		extraction, err := v.extract(ctx, parser, source)
		if err != nil {
			v.logger.Warn("document extraction failed, using supplied text", "parser", parser.Name(), "err", err)
		} else {
			text = extraction.Text
			nativePages = extraction.NativePages
		}
	}

	text = norm.NFC.String(text)
	pages := SegmentPages(text)

	total := len(pages)
	if nativePages > 0 {
		total = nativePages
	}

	return ParsedDocument{
		Text:       text,
		Pages:      pages,
		TotalPages: total,
		Layout:     in.LayoutMap,
	}
}

// extract runs a parser, turning a panic inside a third-party decoder into an error.
func (v *Validator) extract(ctx context.Context, parser DocumentParser, source Source) (extraction Extraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parser %q panicked: %v", parser.Name(), r)
		}
	}()

	extraction, err = parser.Parse(ctx, source)
	if err != nil {
		return Extraction{}, fmt.Errorf("parser %q failed: %w", parser.Name(), err)
	}
	return extraction, nil
}
