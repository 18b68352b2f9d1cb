// SPDX-License-Identifier: Apache-2.0

package report_test

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/appraisal-tools/report-qa/internal/report"
)

// wellFormedReport passes every check against wellFormedContext.
const wellFormedReport = `שומת מקרקעין - חוות דעת
מוגש ל: ישראל ישראלי
1. תיאור הנכס והסביבה
הנכס ממוקם ברחוב הרצל 12, שכונת נווה שאנן, חיפה.
הנכס הינו דירת מגורים בת 4 חדרים בקומה השלישית בבניין משותף.
עמוד 1 מתוך 3
2. מצב משפטי
גוש: 10823 חלקה: 55 תת חלקה: 3 שטח רשום: 120 מ"ר
נספחים: נסח טאבו ותשריט הבית המשותף.
3. מידע תכנוני
לבניין היתר בניה מספר 1234 משנת 1995.
הבניין נבנה בהתאם להיתר ולתכניות החלות במקום.
עמוד 2 מתוך 3
4. גורמים ושיקולים בשומה
בהערכת השווי הובאו בחשבון מיקום הנכס, גודלו ומצבו הפיזי.
5. תחשיב
מחיר למ"ר אקוויוולנטי: 14,000 ₪ לפי עסקאות השוואה בסביבה.
6. השומה
שווי הנכס מוערך בסך 1,190,000 ₪.
השווי הנ"ל כולל מע"מ.
עמוד 3 מתוך 3
`

func num(v float64) *float64 {
	return &v
}

func wellFormedContext() *report.GenerationContext {
	return &report.GenerationContext{
		AddressStruct: &report.Address{
			Street:       "הרצל",
			HouseNumber:  "12",
			Neighborhood: "נווה שאנן",
			City:         "חיפה",
		},
		ClientName:     "ישראל ישראלי",
		InspectionDate: "01.03.2024",
		ValuationDate:  "05/03/2024",
		Rights:         &report.Rights{Attachments: []any{"נסח טאבו", "תשריט"}},
		Permits:        []any{map[string]any{"number": "1234", "year": 1995}},
		ComparablesGrid: []map[string]any{
			{"address": "הרצל 10", "price_per_sqm": 13800},
			{"address": "הרצל 20", "price_per_sqm": 14100},
			{"address": "בלפור 3", "price_per_sqm": 14150},
		},
		Calc51: &report.Calc51{EquivPricePerSqm: num(14000)},
		Calc52: &report.Calc52{
			EqArea:            num(85),
			AssetValue:        num(1190000),
			AssetValueRounded: num(1190000),
		},
		PropertyMeta: &report.PropertyMeta{BuiltAreaSqm: num(80), BalconySqm: num(10)},
	}
}

var fixedNow = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

func newTestValidator(opts ...report.Option) *report.Validator {
	base := []report.Option{
		report.WithLogger(log.New(io.Discard)),
		report.WithNow(func() time.Time { return fixedNow }),
	}
	return report.NewValidator(append(base, opts...)...)
}

// resultsWithID returns the results of one check id, in order.
func resultsWithID(checks []report.CheckResult, id string) []report.CheckResult {
	var out []report.CheckResult
	for _, c := range checks {
		if c.ID == id {
			out = append(out, c)
		}
	}
	return out
}

func failing(checks []report.CheckResult) []report.CheckResult {
	var out []report.CheckResult
	for _, c := range checks {
		if !c.Pass {
			out = append(out, c)
		}
	}
	return out
}
