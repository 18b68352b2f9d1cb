// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"math"
	"regexp"
)

const (
	// balconyWeight is the share of balcony area counted toward equivalent area.
	balconyWeight = 0.5
	// areaTolerance absorbs floating rounding noise in square meters.
	areaTolerance = 0.01
	// currencyTolerance absorbs upstream integer rounding of values in ILS.
	currencyTolerance = 100.0
	roundingStep      = 1000.0
)

var vatPattern = regexp.MustCompile(`מע["״׳']?מ|מס\s+ערך\s+מוסף`)

// vatSentence is appended under section 5.2 when the VAT statement is missing.
const vatSentence = `השווי הנ"ל כולל מע"מ.`

func roundUpToStep(v float64) float64 {
	return math.Ceil(v/roundingStep) * roundingStep
}

func checkCalculations(in checkInput) []CheckResult {
	c52 := in.gc.Calc52
	if c52 == nil {
		return []CheckResult{failed("calc.data", "נתוני התחשיב (5.2) חסרים בהקשר היצירה", nil)}
	}

	var results []CheckResult

	if meta := in.gc.PropertyMeta; meta != nil && meta.BuiltAreaSqm != nil && c52.EqArea != nil {
		balcony := 0.0
		if meta.BalconySqm != nil {
			balcony = *meta.BalconySqm
		}
		expected := *meta.BuiltAreaSqm + balcony*balconyWeight
		if math.Abs(expected-*c52.EqArea) > areaTolerance {
			results = append(results, failed("calc.eq_area",
				fmt.Sprintf("שטח אקוויוולנטי שגוי: צפוי %.2f, דווח %.2f", expected, *c52.EqArea),
				&Fix{Action: "recalculate", Target: "calc_5_2.eq_area", Details: fmt.Sprintf("%.2f", expected)}))
		} else {
			results = append(results, passed("calc.eq_area", fmt.Sprintf("שטח אקוויוולנטי תקין (%.2f)", expected)))
		}
	}

	if c51 := in.gc.Calc51; c51 != nil && c51.EquivPricePerSqm != nil && c52.EqArea != nil && c52.AssetValue != nil {
		expected := *c52.EqArea * *c51.EquivPricePerSqm
		if math.Abs(expected-*c52.AssetValue) > currencyTolerance {
			results = append(results, failed("calc.asset_value",
				fmt.Sprintf("שווי הנכס שגוי: צפוי %.0f, דווח %.0f", expected, *c52.AssetValue),
				&Fix{Action: "recalculate", Target: "calc_5_2.asset_value", Details: fmt.Sprintf("%.0f", expected)}))
		} else {
			results = append(results, passed("calc.asset_value", "שווי הנכס תואם לתחשיב"))
		}
	}

	if c52.AssetValueRounded != nil && c52.AssetValue != nil {
		expected := roundUpToStep(*c52.AssetValue)
		if expected != *c52.AssetValueRounded {
			results = append(results, failed("calc.rounding",
				fmt.Sprintf("עיגול השווי שגוי: צפוי %.0f, דווח %.0f", expected, *c52.AssetValueRounded),
				&Fix{Action: "recalculate", Target: "calc_5_2.asset_value_rounded", Details: fmt.Sprintf("%.0f", expected)}))
		} else {
			results = append(results, passed("calc.rounding", "עיגול השווי תקין"))
		}
	}

	return results
}

func checkFinalStatement(in checkInput) []CheckResult {
	var results []CheckResult
	if finalSection.pattern.MatchString(in.doc.Text) {
		results = append(results, passed("final.section", "פרק השומה הסופית קיים"))
	} else {
		results = append(results, failed("final.section", fmt.Sprintf("חסר פרק: %s", finalSection.name), nil))
	}

	if c52 := in.gc.Calc52; c52 != nil && c52.AssetValueRounded != nil {
		if vatPattern.MatchString(in.doc.Text) {
			results = append(results, passed("final.vat", "הצהרת מע\"מ קיימת"))
		} else {
			results = append(results, failed("final.vat", "חסרה הצהרה לגבי הכללת מע\"מ בשווי",
				&Fix{Action: "append_text", Target: "5.2", Details: vatSentence}))
		}
	}
	return results
}
