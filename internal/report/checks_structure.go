// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// section is a required report heading.
type section struct {
	name    string
	pattern *regexp.Regexp
}

var (
	planningSection = section{name: "3. מידע תכנוני", pattern: regexp.MustCompile(`(?m)^\s*3\.\s*(?:מידע|מצב)\s+תכנוני`)}
	finalSection    = section{name: "6. השומה", pattern: regexp.MustCompile(`(?m)^\s*6\.\s*(?:השומה|שומה|מסקנות)`)}
)

// requiredSections must appear in this order.
var requiredSections = []section{
	{name: "עמוד שער", pattern: regexp.MustCompile(`(?:שומת\s+מקרקעין|חוות\s+דעת)`)},
	{name: "1. תיאור הנכס והסביבה", pattern: regexp.MustCompile(`(?m)^\s*1\.\s*(?:תיאור|פרטי)`)},
	{name: "2. מצב משפטי", pattern: regexp.MustCompile(`(?m)^\s*2\.\s*(?:מצב\s+(?:משפטי|הזכויות)|זכויות)`)},
	planningSection,
	{name: "4. גורמים ושיקולים", pattern: regexp.MustCompile(`(?m)^\s*4\.\s*גורמים`)},
	{name: "5. תחשיב", pattern: regexp.MustCompile(`(?m)^\s*5\.\s*(?:תחשיב|ניתוח|עקרונות)`)},
	finalSection,
}

var hebrewFooterPattern = regexp.MustCompile(`עמוד\s*(\d+)\s*מתוך\s*(\d+)`)

var numberedHeadingPattern = regexp.MustCompile(`^\d+\.\s`)

var headingWords = []string{"תיאור", "מצב", "מידע", "גורמים", "תחשיב", "השומה", "ניתוח", "מסקנות"}

// blankPageThreshold is the trimmed length, in characters, under which a page is suspect.
const blankPageThreshold = 50

func isHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if numberedHeadingPattern.MatchString(trimmed) {
		return true
	}
	for _, w := range headingWords {
		if strings.HasPrefix(trimmed, w) {
			return true
		}
	}
	return false
}

// lastLines returns up to n trailing non-blank lines.
func lastLines(lines []string, n int) []string {
	var out []string
	for i := len(lines) - 1; i >= 0 && len(out) < n; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			out = append(out, lines[i])
		}
	}
	return out
}

func checkShell(in checkInput) []CheckResult {
	if !hasHebrew(in.doc.Text) {
		return []CheckResult{failed("shell.hebrew", "המסמך אינו מכיל טקסט בעברית", nil)}
	}
	return []CheckResult{passed("shell.hebrew", "המסמך מכיל טקסט בעברית")}
}

func checkFooter(in checkInput) []CheckResult {
	m := hebrewFooterPattern.FindStringSubmatch(in.doc.Text)
	if m == nil {
		return []CheckResult{failed("footer.page_numbers", "לא נמצאה כותרת תחתונה במבנה 'עמוד X מתוך Y'", &Fix{
			Action:  "insert_footer_template",
			Target:  "footer",
			Details: "עמוד {PAGE} מתוך {NUMPAGES}",
		})}
	}

	// Submatches are digit runs; overflow is the only way Atoi fails.
	page, errPage := strconv.Atoi(m[1])
	total, errTotal := strconv.Atoi(m[2])

	var results []CheckResult
	if errPage != nil || page < 1 {
		results = append(results, failed("footer.page_numbers", fmt.Sprintf("מספר עמוד לא תקין בכותרת התחתונה: %s", m[1]), nil))
	} else {
		results = append(results, passed("footer.page_numbers", "נמצאה כותרת תחתונה עם מספור עמודים"))
	}
	if errTotal != nil || total != in.doc.TotalPages {
		results = append(results, failed("footer.total_pages",
			fmt.Sprintf("סך העמודים בכותרת התחתונה (%s) אינו תואם למספר העמודים במסמך (%d)", m[2], in.doc.TotalPages),
			&Fix{Action: "update_field", Target: "footer", Details: "עדכן את שדה NUMPAGES בכותרת התחתונה"}))
	}
	return results
}

func checkSectionOrder(in checkInput) []CheckResult {
	var results []CheckResult
	prev := -1
	for _, s := range requiredSections {
		loc := s.pattern.FindStringIndex(in.doc.Text)
		if loc == nil {
			results = append(results, failed("structure.section_order", fmt.Sprintf("חסר פרק: %s", s.name), nil))
			continue
		}
		if loc[0] < prev {
			results = append(results, failed("structure.section_order", fmt.Sprintf("הפרק '%s' מופיע שלא בסדר הנכון", s.name), nil))
		}
		prev = loc[0]
	}
	if len(results) == 0 {
		return []CheckResult{passed("structure.section_order", "כל הפרקים קיימים ובסדר הנכון")}
	}
	return results
}

func checkPagination(in checkInput) []CheckResult {
	pages := in.doc.Pages
	var results []CheckResult

	orphans := 0
	for i := 0; i < len(pages)-1; i++ {
		for _, line := range lastLines(pages[i].Lines, 3) {
			if !isHeading(line) {
				continue
			}
			heading := strings.TrimSpace(line)
			orphans++
			results = append(results, failed("pagination.orphans",
				fmt.Sprintf("כותרת יתומה בסוף עמוד %d: '%s'", pages[i].PageNumber, heading),
				&Fix{
					Action:  "keep_with_next",
					Target:  heading,
					Details: "החל 'שמור עם הבא' על סגנון הכותרת או הוסף מעבר עמוד לפניה",
				},
				pages[i].PageNumber, pages[i+1].PageNumber))
			break
		}
	}
	if orphans == 0 {
		results = append(results, passed("pagination.orphans", "לא נמצאו כותרות יתומות"))
	}

	blanks := 0
	for _, p := range pages {
		if n := utf8.RuneCountInString(strings.TrimSpace(p.Text)); n < blankPageThreshold {
			blanks++
			results = append(results, failed("pagination.blank_pages",
				fmt.Sprintf("עמוד %d כמעט ריק (%d תווים)", p.PageNumber, n),
				&Fix{Action: "remove_page_break", Target: fmt.Sprintf("page %d", p.PageNumber), Details: "הסר מעבר עמוד מיותר או פסקאות ריקות"},
				p.PageNumber))
		}
	}
	if blanks == 0 {
		results = append(results, passed("pagination.blank_pages", "לא נמצאו עמודים ריקים"))
	}

	return results
}

func checkTypography(in checkInput) []CheckResult {
	results := []CheckResult{}
	if hasHebrew(in.doc.Text) {
		results = append(results, passed("typography.hebrew", "טקסט עברי זוהה"))
	} else {
		results = append(results, failed("typography.hebrew", "לא זוהה טקסט עברי לבדיקת טיפוגרפיה", nil))
	}
	return append(results, passed("typography.layout", "בדיקת גופנים, ריווח ויישור דורשת ניתוח פריסה ואינה זמינה מטקסט בלבד"))
}

func checkLocalization(in checkInput) []CheckResult {
	results := []CheckResult{}
	if hasHebrew(in.doc.Text) {
		results = append(results, passed("l10n.hebrew", "המסמך מנוסח בעברית"))
	} else {
		results = append(results, failed("l10n.hebrew", "המסמך אינו מנוסח בעברית", nil))
	}
	return append(results, passed("l10n.rtl", "אימות כיווניות RTL דורש ניתוח פריסה ואינו זמין מטקסט בלבד"))
}
