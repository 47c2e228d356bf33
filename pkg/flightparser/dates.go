package flightparser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

const englishMonth = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

const spanishMonth = `(enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|setiembre|octubre|noviembre|diciembre|ene|abr|ago|dic)`

const weekdayPrefix = `(?:(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?,?\s+)?`

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,

	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4, "mayo": 5, "junio": 6,
	"julio": 7, "agosto": 8, "septiembre": 9, "setiembre": 9, "octubre": 10,
	"noviembre": 11, "diciembre": 12, "ene": 1, "abr": 4, "ago": 8, "dic": 12,
}

// dateRule pairs a pattern with the capture-group order of its fields.
type dateRule struct {
	re                  *regexp.Regexp
	month, day, year    int
	monthName, twoDigit bool
}

var dateRules = []dateRule{
	// 01/15/2024, 1-15-2024
	{re: regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`), month: 1, day: 2, year: 3},
	// Mon, Jan. 15, 2024 / January 15th 2024
	{re: regexp.MustCompile(`(?i)\b` + weekdayPrefix + englishMonth + `\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`), month: 1, day: 2, year: 3, monthName: true},
	// 15 Jan 2024
	{re: regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+` + englishMonth + `\.?,?\s+(\d{4})\b`), day: 1, month: 2, year: 3, monthName: true},
	// 15 de enero de 2024
	{re: regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:de\s+)?` + spanishMonth + `\.?,?\s+(?:de\s+|del\s+)?(\d{4})\b`), day: 1, month: 2, year: 3, monthName: true},
	// 2024-01-15
	{re: regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`), year: 1, month: 2, day: 3},
	// 01/15/24, 01-15-24
	{re: regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2})\b`), month: 1, day: 2, year: 3, twoDigit: true},
	// 15JAN24 / 15 Jan 24
	{re: regexp.MustCompile(`(?i)\b(\d{1,2})\s?(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\s?(\d{2})\b`), day: 1, month: 2, year: 3, monthName: true, twoDigit: true},
}

// ExtractDates finds every recognizable calendar date in text and returns
// them as distinct YYYY-MM-DD strings in ascending order.
func ExtractDates(text string) []string {
	return collectDates(text, dateRules)
}

func collectDates(text string, rules []dateRule) []string {
	seen := make(map[string]struct{})
	dates := make([]string, 0, 2)
	for _, rule := range rules {
		for _, m := range rule.re.FindAllStringSubmatch(text, -1) {
			date, ok := rule.normalize(m)
			if !ok {
				continue
			}
			if _, dup := seen[date]; dup {
				continue
			}
			seen[date] = struct{}{}
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates
}

func (r dateRule) normalize(m []string) (string, bool) {
	var month int
	if r.monthName {
		month = lookupMonth(m[r.month])
	} else {
		month, _ = strconv.Atoi(m[r.month])
	}
	day, err := strconv.Atoi(m[r.day])
	if err != nil {
		return "", false
	}
	year, err := strconv.Atoi(m[r.year])
	if err != nil {
		return "", false
	}
	if r.twoDigit {
		year = expandYear(year)
	}
	return formatDate(year, month, day)
}

func lookupMonth(name string) int {
	name = strings.ToLower(strings.TrimSuffix(name, "."))
	if m, ok := monthIndex[name]; ok {
		return m
	}
	if len(name) >= 3 {
		return monthIndex[name[:3]]
	}
	return 0
}

// expandYear pivots two-digit years: 00-50 are 20xx, 51-99 are 19xx.
func expandYear(yy int) int {
	if yy <= 50 {
		return 2000 + yy
	}
	return 1900 + yy
}

// formatDate rejects impossible calendar dates such as Feb 30.
func formatDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 || year > 2199 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return "", false
	}
	return t.Format(dateLayout), true
}

// NormalizeDate coerces a loosely formatted date into YYYY-MM-DD.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.Format(dateLayout), true
	}
	if dates := ExtractDates(s); len(dates) > 0 {
		return dates[0], true
	}
	return "", false
}
