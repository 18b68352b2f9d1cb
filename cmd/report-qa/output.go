// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/appraisal-tools/report-qa/internal/config"
	"github.com/appraisal-tools/report-qa/internal/report"
)

// writeReport renders result to w in the given format.
func writeReport(w io.Writer, format string, result report.ValidationReport) error {
	switch format {
	case config.OutputYAML:
		out, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = w.Write(out)
		return err
	case config.OutputText:
		formatHuman(w, result)
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	}
}

// formatHuman writes one line per check and a summary line.
func formatHuman(w io.Writer, result report.ValidationReport) {
	for _, c := range result.Checks {
		status := "ok"
		if !c.Pass {
			status = string(report.SeverityOf(c.ID))
		}
		fmt.Fprintf(w, "[%s] %s: %s", status, c.ID, c.Message)
		if len(c.Page) > 0 {
			fmt.Fprintf(w, " (pages %v)", c.Page)
		}
		fmt.Fprintln(w)
		if c.Fix != nil {
			fmt.Fprintf(w, "    fix: %s %s: %s\n", c.Fix.Action, c.Fix.Target, c.Fix.Details)
		}
	}

	if len(result.AutoFixSuggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range result.AutoFixSuggestions {
			fmt.Fprintf(w, "  %d. %s: %s\n", s.Priority, s.Action, s.Details)
		}
	}

	verdict := "PASS"
	if !result.Summary.Pass {
		verdict = "FAIL"
	}
	fmt.Fprintf(w, "\n%s: %d page(s), %d error(s), %d warning(s)\n",
		verdict, result.Summary.Pages, result.Summary.Errors, result.Summary.Warnings)
}
