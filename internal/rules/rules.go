// Package rules compiles keyword→category rule text and classifies
// transactions by first match.
package rules

import (
	"strings"

	"github.com/ChasNicholls/spendlite/internal/model"
)

// Separator splits a rule line into keyword and category.
const Separator = "=>"

// DefaultRuleText seeds the rule box when nothing is persisted and no rules
// file is configured.
const DefaultRuleText = `# Rules format: KEYWORD => CATEGORY
OFFICEWORKS => OFFICE SUPPLIES
COLES => GROCERIES
SHELL => PETROL
UBER => TRANSPORT
WOOLWORTHS => GROCERIES
BP => PETROL
BUNNINGS => HARDWARE
`

// Parse compiles rule text into an ordered rule sequence. Blank lines and
// #-comments are skipped; lines without a separator or with an empty
// keyword or category are silently dropped.
func Parse(text string) []model.Rule {
	var rules []model.Rule
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keyword, category, ok := splitRule(line)
		if !ok {
			continue
		}
		rules = append(rules, model.Rule{
			Keyword:  strings.ToLower(keyword),
			Category: strings.ToUpper(category),
		})
	}
	return rules
}

// Classify assigns each transaction the category of the first rule whose
// keyword appears in its description, or Uncategorised when none match.
// The category field is mutated in place; re-running with the same rules
// yields the same result.
func Classify(txns []model.Transaction, rules []model.Rule) {
	for i := range txns {
		desc := strings.ToLower(txns[i].Description)
		matched := model.Uncategorised
		for _, r := range rules {
			if strings.Contains(desc, r.Keyword) {
				matched = r.Category
				break
			}
		}
		txns[i].Category = matched
	}
}

// Upsert replaces the category of the rule line whose keyword equals the
// given keyword (case-insensitive), preserving its position, or appends a
// new line at the end. Returns the updated rule text.
func Upsert(text, keyword, category string) string {
	kw := strings.ToUpper(strings.TrimSpace(keyword))
	cat := strings.ToUpper(strings.TrimSpace(category))
	newLine := kw + " " + Separator + " " + cat

	lines := splitLines(text)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		existing, _, ok := splitRule(trimmed)
		if !ok {
			continue
		}
		if strings.ToUpper(existing) == kw {
			lines[i] = newLine
			return strings.Join(lines, "\n")
		}
	}
	lines = append(lines, newLine)
	return strings.Join(lines, "\n")
}

// Format renders an ordered rule sequence as canonical rule text, one
// "KEYWORD => CATEGORY" line per rule. Parse(Format(rules)) reconstructs an
// equivalent sequence.
func Format(rules []model.Rule) string {
	var b strings.Builder
	for _, r := range rules {
		b.WriteString(strings.ToUpper(r.Keyword))
		b.WriteString(" " + Separator + " ")
		b.WriteString(r.Category)
		b.WriteString("\n")
	}
	return b.String()
}

// NormalizeText rewrites rule text with a single newline style, for export.
func NormalizeText(text string) string {
	return strings.Join(splitLines(text), "\n")
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// splitRule takes the keyword from before the first separator and the
// category from the segment right after it; any further separated segments
// are ignored. Both parts must be non-empty after trimming.
func splitRule(line string) (keyword, category string, ok bool) {
	parts := strings.Split(line, Separator)
	if len(parts) < 2 {
		return "", "", false
	}
	keyword = strings.TrimSpace(parts[0])
	category = strings.TrimSpace(parts[1])
	if keyword == "" || category == "" {
		return "", "", false
	}
	return keyword, category, true
}
