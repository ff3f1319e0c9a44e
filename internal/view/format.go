package view

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// AllMonthsLabel is the dropdown sentinel for an empty month filter.
const AllMonthsLabel = "All months"

var yearMonthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// MonthLabel renders a "YYYY-MM" key as "March 2024". An empty key renders
// as the all-months sentinel.
func MonthLabel(ym string) string {
	if ym == "" {
		return AllMonthsLabel
	}
	parts := strings.SplitN(ym, "-", 2)
	if len(parts) != 2 {
		return ym
	}
	y, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || m < 1 || m > 12 {
		return ym
	}
	return fmt.Sprintf("%s %d", time.Month(m).String(), y)
}

// FriendlyMonthOrAll maps a month-filter value to a display label: empty
// becomes the sentinel, a year-month key becomes its long label, anything
// else passes through.
func FriendlyMonthOrAll(label string) string {
	if label == "" {
		return AllMonthsLabel
	}
	if yearMonthPattern.MatchString(label) {
		return MonthLabel(label)
	}
	return label
}

// ForFilename collapses whitespace runs to underscores for use in an
// export filename.
func ForFilename(label string) string {
	return strings.Join(strings.Fields(label), "_")
}

// TitleCase renders an uppercase category name for display: underscores and
// hyphens become spaces, runs of whitespace collapse, and each word is
// capitalised.
func TitleCase(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, s)
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
