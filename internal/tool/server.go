// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/appraisal-tools/report-qa/internal/report"
)

// NewServer creates an MCP server exposing the report validation tools.
// A nil validator gets the default parsers.
func NewServer(name, version string, v *report.Validator) *mcp.Server {
	if v == nil {
		v = defaultValidator()
	}
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)
	mcp.AddTool(server, MetadataValidateReport, ValidateReport(v))
	return server
}

// NewValidator builds a Validator with the default parsers and the given options.
func NewValidator(opts ...report.Option) *report.Validator {
	return defaultValidator(opts...)
}
