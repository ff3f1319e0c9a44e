package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// genericLayouts are unambiguous calendar formats tried before any
// day/month disambiguation. Numeric d/m/y forms are deliberately absent:
// they go through the day-first branch below.
var genericLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

var (
	numericDMY = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})$`)
	clockTime  = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}\s*(am|pm)\s*`)
	textualDMY = regexp.MustCompile(`(?i)^(?:(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun)[a-z]*,?\s+)?(\d{1,2})\s+(January|February|March|April|May|June|July|August|September|October|November|December),?\s+(\d{4})`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// DateSmart resolves heterogeneous date text to a calendar date. It tries,
// in order: unambiguous layouts, a numeric day/month/year pattern with
// day-first (AU) preference, and a "weekday, day monthname, year" pattern
// optionally prefixed by a clock time. Returns nil when nothing matches.
func DateSmart(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range genericLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return &d
		}
	}

	if m := numericDMY.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		// Day-first unless the first field cannot be a day.
		day, month := a, b
		if b > 12 && a <= 12 {
			day, month = b, a
		}
		d := time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &d
	}

	stripped := clockTime.ReplaceAllString(s, "")
	if m := textualDMY.FindStringSubmatch(stripped); m != nil {
		day, _ := strconv.Atoi(m[1])
		y, _ := strconv.Atoi(m[3])
		month, ok := monthsByName[strings.ToLower(m[2])]
		if !ok {
			return nil
		}
		d := time.Date(y, month, day, 0, 0, 0, 0, time.UTC)
		return &d
	}

	return nil
}

// YearMonthKey returns the zero-padded "YYYY-MM" bucket key for a date.
func YearMonthKey(d time.Time) string {
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
}
