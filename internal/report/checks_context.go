// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// minComparables is the number of comparable sales a valuation must cite.
const minComparables = 3

type mandatoryField struct {
	name    string
	pattern *regexp.Regexp
	// notAfter rejects a match whose preceding text ends with this word.
	notAfter string
}

var mandatoryFields = []mandatoryField{
	{name: "גוש", pattern: regexp.MustCompile(`גוש\s*[:：]?\s*\d+`)},
	{name: "חלקה", pattern: regexp.MustCompile(`חלקה\s*[:：]?\s*\d+`), notAfter: "תת"},
	{name: "תת חלקה", pattern: regexp.MustCompile(`תת[\s-]*חלקה\s*[:：]?\s*\d+`)},
	{name: "שטח רשום", pattern: regexp.MustCompile(`שטח\s+רשום\s*[:：]?\s*\d[\d,.]*`)},
}

var (
	attachmentsPattern = regexp.MustCompile(`נספח|צרופות|מסמכים\s+מצורפים`)
	permitPattern      = regexp.MustCompile(`היתר`)
	pricePerSqmPattern = regexp.MustCompile(`(?i)מחיר\s*ל[-\s]*(?:מ["״׳']?ר|מטר)|price\s+per\s+(?:sqm|square\s+met(?:er|re))`)
	numericDatePattern = regexp.MustCompile(`^(\d{1,2})[./](\d{1,2})[./](\d{4})$`)
)

// genericDateLayouts are tried after the DD.MM.YYYY and DD/MM/YYYY forms.
var genericDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

func normalized(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func checkAddress(in checkInput) []CheckResult {
	addr := in.gc.AddressStruct
	if addr == nil {
		return []CheckResult{failed("address.sync", "נתוני הכתובת חסרים בהקשר היצירה", nil)}
	}

	parts := []struct{ label, value string }{
		{"רחוב", normalized(addr.Street)},
		{"מספר בית", normalized(string(addr.HouseNumber))},
		{"עיר", normalized(addr.City)},
	}

	var missing []string
	for _, p := range parts {
		if p.value == "" {
			missing = append(missing, p.label)
			continue
		}
		if !regexp.MustCompile(`(?i)` + regexp.QuoteMeta(p.value)).MatchString(in.doc.Text) {
			missing = append(missing, p.label)
		}
	}
	if len(missing) == 0 {
		return []CheckResult{passed("address.sync", "הכתובת מופיעה במסמך")}
	}

	return []CheckResult{failed("address.sync",
		fmt.Sprintf("רכיבי כתובת לא נמצאו במסמך: %s", strings.Join(missing, ", ")),
		&Fix{Action: "global_replace", Target: "{{Address}}", Details: composeAddress(addr)})}
}

// composeAddress renders "street house_number, neighborhood, city", skipping empty parts.
func composeAddress(addr *Address) string {
	head := strings.TrimSpace(normalized(addr.Street) + " " + normalized(string(addr.HouseNumber)))
	var parts []string
	for _, p := range []string{head, normalized(addr.Neighborhood), normalized(addr.City)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func checkClientName(in checkInput) []CheckResult {
	name := normalized(in.gc.ClientName)
	if name == "" {
		return []CheckResult{failed("client.name", "שם המזמין חסר בהקשר היצירה", nil)}
	}
	if !strings.Contains(in.doc.Text, name) {
		return []CheckResult{failed("client.name", fmt.Sprintf("שם המזמין '%s' לא נמצא במסמך", name),
			&Fix{Action: "insert_text", Target: "cover_page", Details: name})}
	}
	return []CheckResult{passed("client.name", "שם המזמין מופיע במסמך")}
}

// parseDate reads DD.MM.YYYY, DD/MM/YYYY or a generic layout in loc.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if m := numericDatePattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
		if t.Day() != day || int(t.Month()) != month {
			return time.Time{}, false
		}
		return t, true
	}
	for _, layout := range genericDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func checkDates(in checkInput) []CheckResult {
	y, m, d := in.now.Date()
	endOfDay := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), in.now.Location())

	fields := []struct{ key, label, value string }{
		{"inspection_date", "תאריך הביקור", in.gc.InspectionDate},
		{"valuation_date", "תאריך השומה", in.gc.ValuationDate},
	}

	var results []CheckResult
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		t, ok := parseDate(f.value, in.now.Location())
		switch {
		case !ok:
			results = append(results, failed("dates.valid",
				fmt.Sprintf("%s '%s' אינו תאריך תקין", f.label, f.value),
				&Fix{Action: "correct_date", Target: f.key, Details: "השתמש בתבנית DD.MM.YYYY"}))
		case t.After(endOfDay):
			results = append(results, failed("dates.valid",
				fmt.Sprintf("%s %s הוא תאריך עתידי", f.label, f.value),
				&Fix{Action: "correct_date", Target: f.key, Details: fmt.Sprintf("עדכן את %s לתאריך שאינו מאוחר מהיום", f.label)}))
		default:
			results = append(results, passed("dates.valid", fmt.Sprintf("%s תקין", f.label)))
		}
	}
	if results == nil {
		return []CheckResult{passed("dates.valid", "לא הוגדרו תאריכים לבדיקה")}
	}
	return results
}

// found reports whether text holds a match for f that is not part of a longer label,
// so "תת חלקה: 3" does not count as a parcel number.
func (f mandatoryField) found(text string) bool {
	if f.notAfter == "" {
		return f.pattern.MatchString(text)
	}
	for _, loc := range f.pattern.FindAllStringIndex(text, -1) {
		before := strings.TrimRight(text[:loc[0]], " \t-־")
		if !strings.HasSuffix(before, f.notAfter) {
			return true
		}
	}
	return false
}

func checkMandatoryIDs(in checkInput) []CheckResult {
	var results []CheckResult
	for _, f := range mandatoryFields {
		if !f.found(in.doc.Text) {
			results = append(results, failed("ids.mandatory_fields", fmt.Sprintf("שדה חובה חסר: %s", f.name),
				&Fix{Action: "insert_field", Target: f.name, Details: "הוסף את הנתון מנסח הטאבו לפרק 2"}))
		}
	}
	if results == nil {
		return []CheckResult{passed("ids.mandatory_fields", "כל שדות הזיהוי (גוש, חלקה, תת חלקה, שטח רשום) נמצאו")}
	}
	return results
}

func checkAttachments(in checkInput) []CheckResult {
	if in.gc.Rights == nil || len(in.gc.Rights.Attachments) == 0 {
		return []CheckResult{passed("attachments.render", "אין נספחים לבדיקה")}
	}
	if !attachmentsPattern.MatchString(in.doc.Text) {
		return []CheckResult{failed("attachments.render",
			fmt.Sprintf("הוגדרו %d נספחים אך פרק הנספחים לא נמצא במסמך", len(in.gc.Rights.Attachments)),
			&Fix{Action: "render_attachments", Target: "2.3", Details: "הוסף את רשימת הנספחים תחת סעיף 2.3 (זכויות)"})}
	}
	return []CheckResult{passed("attachments.render", "פרק הנספחים מופיע במסמך")}
}

func checkPlanning(in checkInput) []CheckResult {
	var results []CheckResult
	if planningSection.pattern.MatchString(in.doc.Text) {
		results = append(results, passed("planning.section", "פרק המידע התכנוני קיים"))
	} else {
		results = append(results, failed("planning.section", fmt.Sprintf("חסר פרק: %s", planningSection.name), nil))
	}

	if len(in.gc.Permits) > 0 {
		if permitPattern.MatchString(in.doc.Text) {
			results = append(results, passed("planning.permits", "היתרי הבניה מוזכרים במסמך"))
		} else {
			results = append(results, failed("planning.permits",
				fmt.Sprintf("הוגדרו %d היתרים אך אינם מוזכרים במסמך", len(in.gc.Permits)),
				&Fix{Action: "insert_section", Target: "3", Details: "הוסף את פירוט היתרי הבניה לפרק 3"}))
		}
	}
	return results
}

func checkComparables(in checkInput) []CheckResult {
	var results []CheckResult
	n := len(in.gc.ComparablesGrid)
	if n < minComparables {
		results = append(results, failed("comps.table",
			fmt.Sprintf("%d comparables found (≥%d required) - נדרשות לפחות %d עסקאות השוואה", n, minComparables, minComparables),
			&Fix{Action: "add_comparables", Target: "comparables_grid", Details: fmt.Sprintf("הוסף %d עסקאות השוואה נוספות", minComparables-n)}))
	} else {
		results = append(results, passed("comps.table", fmt.Sprintf("%d comparables found", n)))
	}

	if pricePerSqmPattern.MatchString(in.doc.Text) {
		results = append(results, passed("comps.price_per_sqm", "מחיר למ\"ר מופיע בטבלת ההשוואה"))
	} else {
		results = append(results, failed("comps.price_per_sqm", "לא נמצא מחיר למ\"ר בטבלת ההשוואה", nil))
	}
	return results
}
