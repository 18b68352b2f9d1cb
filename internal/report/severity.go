// SPDX-License-Identifier: Apache-2.0

package report

import (
	"strings"
)

// Severity classifies a failing check.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category groups checks that share a remediation.
type Category string

const (
	CategoryNone       Category = ""
	CategoryPagination Category = "pagination"
	CategoryTable      Category = "table"
	CategoryImage      Category = "image"
	CategoryCurrency   Category = "currency"
	CategoryFooter     Category = "footer"
)

// severityRule maps a check id prefix to the severity of its failures.
type severityRule struct {
	prefix   string
	severity Severity
}

// severityRules is evaluated in order; the first matching prefix wins and
// anything unmatched is a warning.
var severityRules = []severityRule{
	{prefix: "pagination.", severity: SeverityError},
	{prefix: "calc.", severity: SeverityError},
	{prefix: "ids.mandatory", severity: SeverityError},
}

// SeverityOf returns the severity a failure of the given check id carries.
func SeverityOf(id string) Severity {
	for _, rule := range severityRules {
		if strings.HasPrefix(id, rule.prefix) {
			return rule.severity
		}
	}
	return SeverityWarning
}

type suggestionTemplate struct {
	category Category
	priority int
	action   string
	details  string
}

// suggestionTemplates holds one remediation per category, in priority order.
var suggestionTemplates = []suggestionTemplate{
	{
		category: CategoryPagination,
		priority: 1,
		action:   "enable_keep_with_next_for_heading_levels",
		details:  "Apply keep-with-next to heading styles (levels 1-3) and keep-lines-together to short paragraphs so headings never end a page.",
	},
	{
		category: CategoryTable,
		priority: 2,
		action:   "repeat_table_header_and_prevent_row_split",
		details:  "Mark the comparables table header row as repeating and disallow rows from breaking across pages.",
	},
	{
		category: CategoryImage,
		priority: 3,
		action:   "embed_attachment_images_inline",
		details:  "Render attachment scans as inline images with fixed width inside the attachments section.",
	},
	{
		category: CategoryCurrency,
		priority: 4,
		action:   "normalize_currency_format",
		details:  "Format all amounts as he-IL currency (₪ with thousands separators) and regenerate calculation values from the context.",
	},
	{
		category: CategoryFooter,
		priority: 5,
		action:   "insert_page_x_of_y_footer",
		details:  "Insert the footer template 'עמוד {PAGE} מתוך {NUMPAGES}' into every section.",
	},
}

// Aggregate folds check results into a report. Counts come only from checks.
func Aggregate(checks []CheckResult, pageCount int) ValidationReport {
	if checks == nil {
		checks = []CheckResult{}
	}

	var errCount, warnCount int
	failing := make(map[Category]bool)
	for _, c := range checks {
		if c.Pass {
			continue
		}
		if SeverityOf(c.ID) == SeverityError {
			errCount++
		} else {
			warnCount++
		}
		failing[c.Category] = true
	}

	suggestions := make([]Suggestion, 0, len(suggestionTemplates))
	for _, tmpl := range suggestionTemplates {
		if failing[tmpl.category] {
			suggestions = append(suggestions, Suggestion{
				Priority: tmpl.priority,
				Action:   tmpl.action,
				Details:  tmpl.details,
			})
		}
	}

	return ValidationReport{
		Summary: Summary{
			Pass:     errCount == 0,
			Pages:    pageCount,
			Errors:   errCount,
			Warnings: warnCount,
		},
		Checks:             checks,
		AutoFixSuggestions: suggestions,
	}
}
