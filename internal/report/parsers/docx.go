// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/appraisal-tools/report-qa/internal/report"
)

// wordNamespace is the WordprocessingML main namespace.
const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// maxDocumentXML caps the decompressed size of word/document.xml.
const maxDocumentXML = 64 << 20

// DOCXParser extracts raw text from a word-processor document supplied as
// base64, or as raw bytes that carry the ZIP signature. Formatting is dropped;
// each paragraph becomes one line.
type DOCXParser struct{}

func NewDOCXParser() *DOCXParser {
	return &DOCXParser{}
}

func (p *DOCXParser) Name() string {
	return "docx"
}

func (p *DOCXParser) CanHandle(source report.Source) bool {
	return strings.TrimSpace(source.Base64) != "" || isZip(source.Bytes)
}

func (p *DOCXParser) Parse(ctx context.Context, source report.Source) (report.Extraction, error) {
	data := source.Bytes
	if b64 := strings.TrimSpace(source.Base64); b64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return report.Extraction{}, fmt.Errorf("failed to decode base64 document: %w", err)
		}
		data = decoded
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return report.Extraction{}, fmt.Errorf("failed to open document container: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report.Extraction{}, err
		}
		rc, err := f.Open()
		if err != nil {
			return report.Extraction{}, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		defer rc.Close()

		text, err := documentText(io.LimitReader(rc, maxDocumentXML))
		if err != nil {
			return report.Extraction{}, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		return report.Extraction{Text: text}, nil
	}
	return report.Extraction{}, errors.New("word/document.xml not found")
}

// documentText walks WordprocessingML and keeps only the text runs. Tabs and
// breaks count only inside a run; w:tab under w:pPr/w:tabs defines a tab stop.
func documentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	runDepth := 0

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				if runDepth > 0 {
					b.WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 {
					b.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "r":
				runDepth--
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
