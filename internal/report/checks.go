// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"regexp"
	"slices"
	"time"
)

// checkInput is everything a check may look at.
type checkInput struct {
	doc ParsedDocument
	gc  GenerationContext
	now time.Time
}

// checkRule binds a check to the id family and remediation category of its results.
type checkRule struct {
	id       string
	category Category
	// uncategorized lists result ids the category's remediation cannot fix.
	uncategorized []string
	run           func(in checkInput) []CheckResult
}

// checkRules is the fixed battery, in output order.
var checkRules = []checkRule{
	{id: "shell", run: checkShell},
	{id: "footer", category: CategoryFooter, run: checkFooter},
	{id: "structure", run: checkSectionOrder},
	{id: "pagination", category: CategoryPagination, run: checkPagination},
	{id: "typography", run: checkTypography},
	{id: "l10n", run: checkLocalization},
	{id: "address", run: checkAddress},
	{id: "client", run: checkClientName},
	{id: "dates", run: checkDates},
	{id: "ids", run: checkMandatoryIDs},
	{id: "attachments", category: CategoryImage, run: checkAttachments},
	{id: "planning", run: checkPlanning},
	{id: "comps", category: CategoryTable, run: checkComparables},
	{id: "calc", category: CategoryCurrency, uncategorized: []string{"calc.data"}, run: checkCalculations},
	{id: "final", category: CategoryCurrency, run: checkFinalStatement},
}

// RunChecks evaluates every check against doc and gc. A panicking check is
// reported as a failing result and the remaining checks still run.
func (v *Validator) RunChecks(doc ParsedDocument, gc GenerationContext) []CheckResult {
	in := checkInput{doc: doc, gc: gc, now: v.now()}

	results := make([]CheckResult, 0, 2*len(checkRules))
	for _, rule := range checkRules {
		for _, r := range v.runRule(rule, in) {
			if !slices.Contains(rule.uncategorized, r.ID) {
				r.Category = rule.category
			}
			results = append(results, r)
		}
	}
	return results
}

func (v *Validator) runRule(rule checkRule, in checkInput) (results []CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("check panicked", "check", rule.id, "panic", r)
			results = []CheckResult{failed(rule.id+".internal", fmt.Sprintf("הבדיקה נכשלה באופן פנימי: %v", r), nil)}
		}
	}()
	return rule.run(in)
}

var hebrewPattern = regexp.MustCompile(`[\x{0590}-\x{05FF}]`)

func hasHebrew(s string) bool {
	return hebrewPattern.MatchString(s)
}

func passed(id, message string, pages ...int) CheckResult {
	return CheckResult{ID: id, Pass: true, Page: pages, Message: message}
}

func failed(id, message string, fix *Fix, pages ...int) CheckResult {
	return CheckResult{ID: id, Pass: false, Page: pages, Message: message, Fix: fix}
}
