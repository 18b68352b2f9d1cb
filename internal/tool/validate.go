// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/appraisal-tools/report-qa/internal/genctx"
	"github.com/appraisal-tools/report-qa/internal/report"
	"github.com/appraisal-tools/report-qa/internal/report/parsers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MetadataValidateReport describes the validate_report tool.
var MetadataValidateReport = &mcp.Tool{
	Name: "validate_report",
	Description: "Audit a rendered Hebrew real-estate appraisal report. " +
		"Supply the report as a base64 word-processor document (file_bytes), a base64 PDF (pdf_base64) " +
		"or already-extracted text (text_extracted), plus the generation context that produced it. " +
		"Returns a pass/fail summary (errors fail the report, warnings do not), one result per check " +
		"and prioritized auto-fix suggestions.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"file_bytes": map[string]interface{}{
				"type":        "string",
				"description": "Base64-encoded word-processor (DOCX) rendering of the report.",
			},
			"pdf_base64": map[string]interface{}{
				"type":        "string",
				"description": "Base64-encoded PDF rendering of the report. Takes precedence over file_bytes.",
			},
			"text_extracted": map[string]interface{}{
				"type":        "string",
				"description": "Plain text of the report. Used directly when no file is given, and as a fallback when file extraction fails.",
			},
			"layout_map": map[string]interface{}{
				"type":        "object",
				"description": "Optional layout data, carried through to the parsed document.",
			},
			"gen_context": map[string]interface{}{
				"type":        "object",
				"description": "Generation context: address_struct, client_name, inspection_date, valuation_date, rights, permits, comparables_grid, calc_5_1, calc_5_2, property_meta.",
			},
		},
	},
}

// InputValidateReport is the input for the ValidateReport tool.
type InputValidateReport struct {
	FileBytes     string          `json:"file_bytes"`
	PDFBase64     string          `json:"pdf_base64"`
	TextExtracted string          `json:"text_extracted"`
	LayoutMap     map[string]any  `json:"layout_map"`
	GenContext    json.RawMessage `json:"gen_context"`
}

// OutputValidateReport is the output for the ValidateReport tool.
type OutputValidateReport struct {
	Summary            report.Summary       `json:"summary"`
	Checks             []report.CheckResult `json:"checks"`
	AutoFixSuggestions []report.Suggestion  `json:"auto_fix_suggestions"`
}

// defaultValidator builds a Validator with all default parsers registered.
func defaultValidator(opts ...report.Option) *report.Validator {
	return report.NewValidator(append([]report.Option{report.WithParsers(parsers.Default()...)}, opts...)...)
}

// ValidateReport returns the tool handler backed by v.
func ValidateReport(v *report.Validator) func(context.Context, *mcp.CallToolRequest, InputValidateReport) (*mcp.CallToolResult, OutputValidateReport, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InputValidateReport) (*mcp.CallToolResult, OutputValidateReport, error) {
		inputs, err := toInputs(input)
		if err != nil {
			return nil, OutputValidateReport{}, err
		}

		result := v.Validate(ctx, inputs)
		return nil, OutputValidateReport{
			Summary:            result.Summary,
			Checks:             result.Checks,
			AutoFixSuggestions: result.AutoFixSuggestions,
		}, nil
	}
}

func toInputs(input InputValidateReport) (report.Inputs, error) {
	inputs := report.Inputs{
		FileBase64:    input.FileBytes,
		TextExtracted: input.TextExtracted,
		LayoutMap:     input.LayoutMap,
	}

	if input.PDFBase64 != "" {
		pdf, err := base64.StdEncoding.DecodeString(input.PDFBase64)
		if err != nil {
			return report.Inputs{}, fmt.Errorf("pdf_base64 is not valid base64: %w", err)
		}
		inputs.FileBytes = pdf
		inputs.FileBase64 = ""
	}

	if len(input.GenContext) > 0 && string(input.GenContext) != "null" {
		gc, err := genctx.Parse(input.GenContext, "gen_context.json")
		if err != nil {
			return report.Inputs{}, fmt.Errorf("invalid gen_context: %w", err)
		}
		inputs.GenContext = gc
	}
	return inputs, nil
}
