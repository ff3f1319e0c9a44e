package rules

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ChasNicholls/spendlite/internal/model"
)

// heuristic proposes a rule keyword from a transaction description.
// Heuristics are evaluated in priority order; the first whose detect
// function fires supplies the keyword.
type heuristic struct {
	name    string
	detect  func(desc string) bool
	extract func(desc string) string
}

var (
	paypalWord  = regexp.MustCompile(`(?i)\bPAYPAL\b`)
	tokenAfter  = regexp.MustCompile(`^[A-Za-z0-9&._-]+`)
	leadingJunk = regexp.MustCompile(`^[\s\-:/*]+`)
)

// suggestions is the ordered heuristic table. New merchant heuristics slot
// in here without touching the evaluation loop.
var suggestions = []heuristic{
	{
		name:   "paypal",
		detect: func(desc string) bool { return paypalWord.MatchString(desc) },
		extract: func(desc string) string {
			kw := "PAYPAL"
			if next := nextTokenAfter(desc, "paypal"); next != "" {
				kw += " " + next
			}
			return strings.ToUpper(kw)
		},
	},
	{
		name: "visa",
		detect: func(desc string) bool {
			return strings.Contains(strings.ToUpper(desc), "VISA-")
		},
		extract: func(desc string) string {
			i := strings.Index(strings.ToUpper(desc), "VISA-")
			after := strings.TrimSpace(desc[i+len("VISA-"):])
			return strings.ToUpper(firstField(after))
		},
	},
	{
		name:    "first-word",
		detect:  func(string) bool { return true },
		extract: func(desc string) string { return strings.ToUpper(firstField(desc)) },
	},
}

// SuggestRule proposes a (keyword, category) pair to pre-fill an
// interactive rule prompt for the given transaction. The category defaults
// to the transaction's current one.
func SuggestRule(txn model.Transaction) (keyword, category string) {
	for _, h := range suggestions {
		if h.detect(txn.Description) {
			keyword = h.extract(txn.Description)
			break
		}
	}
	category = strings.ToUpper(txn.Category)
	if category == "" {
		category = model.Uncategorised
	}
	return keyword, category
}

// NearestCategory returns the known category closest to the input by edit
// distance, or empty when nothing is similar enough to be a likely typo.
func NearestCategory(input string, known []string) string {
	in := strings.ToUpper(strings.TrimSpace(input))
	if in == "" {
		return ""
	}
	best := ""
	bestScore := 0.0
	for _, cat := range known {
		c := strings.ToUpper(cat)
		if c == in {
			return c
		}
		longest := max(len(in), len(c))
		if longest == 0 {
			continue
		}
		dist := levenshtein.ComputeDistance(in, c)
		score := 1 - float64(dist)/float64(longest)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < 0.6 {
		return ""
	}
	return best
}

// nextTokenAfter returns the token following a case-insensitive marker in
// the original text, skipping separator punctuation.
func nextTokenAfter(desc, marker string) string {
	i := strings.Index(strings.ToLower(desc), strings.ToLower(marker))
	if i == -1 {
		return ""
	}
	after := leadingJunk.ReplaceAllString(desc[i+len(marker):], "")
	return tokenAfter.FindString(after)
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
