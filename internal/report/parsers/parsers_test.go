// SPDX-License-Identifier: Apache-2.0

package parsers_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appraisal-tools/report-qa/internal/report"
	"github.com/appraisal-tools/report-qa/internal/report/parsers"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:tabs><w:tab w:val="right" w:pos="9026"/></w:tabs></w:pPr><w:r><w:t>שומת מקרקעין</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">גוש: </w:t></w:r><w:r><w:t>10823</w:t></w:r><w:r><w:tab/><w:t>חלקה: 55</w:t></w:r></w:p>
    <w:p><w:r><w:t>שורה</w:t><w:br/><w:t>שבורה</w:t></w:r></w:p>
    <w:p><w:r><w:t>עמוד 1 מתוך 1</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildDOCX(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// CanHandle
// ---------------------------------------------------------------------------

func TestCanHandle(t *testing.T) {
	zipBytes := []byte("PK\x03\x04rest")
	pdfBytes := []byte("%PDF-1.7\n")

	tests := []struct {
		name   string
		source report.Source
		pdf    bool
		docx   bool
		text   bool
	}{
		{name: "pdf bytes", source: report.Source{Bytes: pdfBytes}, pdf: true},
		{name: "zip bytes", source: report.Source{Bytes: zipBytes}, docx: true},
		{name: "base64 document", source: report.Source{Base64: "UEsDBA=="}, docx: true},
		{name: "text only", source: report.Source{Text: "שלום"}, text: true},
		{name: "bytes with text", source: report.Source{Bytes: pdfBytes, Text: "שלום"}, pdf: true},
		{name: "nothing", source: report.Source{}},
	}

	pdf, docx, text := parsers.NewPDFParser(), parsers.NewDOCXParser(), parsers.NewTextParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pdf, pdf.CanHandle(tt.source), "pdf")
			assert.Equal(t, tt.docx, docx.CanHandle(tt.source), "docx")
			assert.Equal(t, tt.text, text.CanHandle(tt.source), "text")
		})
	}
}

func TestDefault(t *testing.T) {
	var names []string
	for _, p := range parsers.Default() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"pdf", "docx", "text"}, names)
}

// ---------------------------------------------------------------------------
// DOCX
// ---------------------------------------------------------------------------

func TestDOCXParser_Base64(t *testing.T) {
	doc := buildDOCX(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   documentXML,
	})

	got, err := parsers.NewDOCXParser().Parse(context.Background(), report.Source{
		Base64: base64.StdEncoding.EncodeToString(doc),
	})
	require.NoError(t, err)

	assert.Equal(t, "שומת מקרקעין\nגוש: 10823\tחלקה: 55\nשורה\nשבורה\nעמוד 1 מתוך 1", got.Text)
	assert.Zero(t, got.NativePages)
}

func TestDOCXParser_RawBytes(t *testing.T) {
	doc := buildDOCX(t, map[string]string{"word/document.xml": documentXML})

	got, err := parsers.NewDOCXParser().Parse(context.Background(), report.Source{Bytes: doc})
	require.NoError(t, err)
	assert.Contains(t, got.Text, "גוש: 10823")
}

func TestDOCXParser_TabStopsAreNotText(t *testing.T) {
	body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/><w:tab w:val="right" w:pos="9026"/></w:tabs></w:pPr>` +
		`<w:r><w:t>מחיר</w:t></w:r><w:r><w:tab/><w:t>14,000</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got, err := parsers.NewDOCXParser().Parse(context.Background(), report.Source{
		Bytes: buildDOCX(t, map[string]string{"word/document.xml": body}),
	})
	require.NoError(t, err)
	assert.Equal(t, "מחיר\t14,000", got.Text)
}

func TestDOCXParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  report.Source
		wantErr string
	}{
		{name: "invalid base64", source: report.Source{Base64: "not base64!"}, wantErr: "decode base64"},
		{name: "not a zip", source: report.Source{Base64: base64.StdEncoding.EncodeToString([]byte("plain"))}, wantErr: "document container"},
		{
			name:    "missing body part",
			source:  report.Source{Bytes: buildDOCX(t, map[string]string{"word/styles.xml": "<styles/>"})},
			wantErr: "word/document.xml not found",
		},
		{
			name:    "malformed xml",
			source:  report.Source{Bytes: buildDOCX(t, map[string]string{"word/document.xml": "<w:document><w:body>"})},
			wantErr: "failed to read word/document.xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsers.NewDOCXParser().Parse(context.Background(), tt.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// PDF and text
// ---------------------------------------------------------------------------

func TestPDFParser_InvalidDocument(t *testing.T) {
	_, err := parsers.NewPDFParser().Parse(context.Background(), report.Source{Bytes: []byte("%PDF-1.7 truncated")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PDF")
}

func TestPDFParser_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parsers.NewPDFParser().Parse(ctx, report.Source{Bytes: []byte("%PDF-1.7")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTextParser_Passthrough(t *testing.T) {
	got, err := parsers.NewTextParser().Parse(context.Background(), report.Source{Text: "עמוד 1 מתוך 1"})
	require.NoError(t, err)
	assert.Equal(t, report.Extraction{Text: "עמוד 1 מתוך 1"}, got)
}
