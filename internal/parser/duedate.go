package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateConfidence = 0.85

// dateRule resolves a matched phrase to a calendar date relative to today.
// A rule whose resolve reports false is treated as not matching.
type dateRule struct {
	pattern *regexp.Regexp
	resolve func(match []string, today time.Time) (time.Time, bool)
}

var monthNames = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// dateRules is evaluated in order; the first matching rule wins. "pasado
// mañana" precedes "mañana" because the latter is a substring of it.
var dateRules = []dateRule{
	{pattern: regexp.MustCompile(`(?i)\bpasado mañana\b`), resolve: offsetDays(2)},
	{pattern: regexp.MustCompile(`(?i)\bhoy\b`), resolve: offsetDays(0)},
	{pattern: regexp.MustCompile(`(?i)\bmañana\b`), resolve: offsetDays(1)},
	{pattern: regexp.MustCompile(`(?i)\beste lunes\b`), resolve: nextWeekday(time.Monday)},
	{pattern: regexp.MustCompile(`(?i)\beste martes\b`), resolve: nextWeekday(time.Tuesday)},
	{pattern: regexp.MustCompile(`(?i)\beste mi[ée]rcoles\b`), resolve: nextWeekday(time.Wednesday)},
	{pattern: regexp.MustCompile(`(?i)\beste jueves\b`), resolve: nextWeekday(time.Thursday)},
	{pattern: regexp.MustCompile(`(?i)\beste viernes\b`), resolve: nextWeekday(time.Friday)},
	{pattern: regexp.MustCompile(`(?i)\beste s[áa]bado\b`), resolve: nextWeekday(time.Saturday)},
	{pattern: regexp.MustCompile(`(?i)\beste domingo\b`), resolve: nextWeekday(time.Sunday)},
	{pattern: regexp.MustCompile(`(?i)\besta semana\b`), resolve: offsetDays(7)},
	{pattern: regexp.MustCompile(`(?i)\bpr[óo]xima semana\b`), resolve: offsetDays(14)},
	{pattern: regexp.MustCompile(`(?i)\bfin de mes\b`), resolve: endOfMonth},
	{pattern: regexp.MustCompile(`\b(\d{1,2})[/\-](\d{1,2})(?:[/\-](\d{2,4}))?\b`), resolve: numericDate},
	{
		pattern: regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:de\s+)?(` + strings.Join(monthNames, "|") + `)\b`),
		resolve: monthNameDate,
	},
}

// DetectDueDate returns the date named by the first matching rule, or nil.
func (p *Parser) DetectDueDate(text string) Detection[*time.Time] {
	today := p.today()
	for _, rule := range dateRules {
		match := rule.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		date, ok := rule.resolve(match, today)
		if !ok {
			continue
		}
		return Detection[*time.Time]{Value: &date, Confidence: dateConfidence}
	}
	return Detection[*time.Time]{}
}

// today is midnight of the current day in the clock's location.
func (p *Parser) today() time.Time {
	now := p.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func offsetDays(days int) func([]string, time.Time) (time.Time, bool) {
	return func(_ []string, today time.Time) (time.Time, bool) {
		return today.AddDate(0, 0, days), true
	}
}

// nextWeekday resolves to the next occurrence strictly after today.
func nextWeekday(target time.Weekday) func([]string, time.Time) (time.Time, bool) {
	return func(_ []string, today time.Time) (time.Time, bool) {
		days := int(target) - int(today.Weekday())
		if days <= 0 {
			days += 7
		}
		return today.AddDate(0, 0, days), true
	}
}

func endOfMonth(_ []string, today time.Time) (time.Time, bool) {
	return time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location()), true
}

// numericDate handles dd/mm, dd/mm/yy and dd/mm/yyyy (also with dashes). A
// missing year is the current one; a two-digit year means 20yy.
func numericDate(match []string, today time.Time) (time.Time, bool) {
	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, false
	}

	year := today.Year()
	if match[3] != "" {
		year, _ = strconv.Atoi(match[3])
		if year < 100 {
			year += 2000
		}
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, today.Location()), true
}

// monthNameDate handles "15 enero" and "15 de enero". A date already past is
// moved to next year.
func monthNameDate(match []string, today time.Time) (time.Time, bool) {
	day, _ := strconv.Atoi(match[1])
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	name := strings.ToLower(match[2])
	for i, m := range monthNames {
		if m != name {
			continue
		}
		date := time.Date(today.Year(), time.Month(i+1), day, 0, 0, 0, 0, today.Location())
		if date.Before(today) {
			date = date.AddDate(1, 0, 0)
		}
		return date, true
	}
	return time.Time{}, false
}

var shortMonths = []string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// dateLabel renders a due date for a chip: "Hoy", "Mañana" or "15 ene".
func dateLabel(date, today time.Time) string {
	switch {
	case sameDay(date, today):
		return "Hoy"
	case sameDay(date, today.AddDate(0, 0, 1)):
		return "Mañana"
	}
	return strconv.Itoa(date.Day()) + " " + shortMonths[date.Month()-1]
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
