package heatmap

import (
	"regexp"
	"sort"
	"strings"
)

// canonical time range labels, as stored with the metcons (en-dash, not hyphen)
const (
	Domain1To5   = "1:00–5:00"
	Domain5To10  = "5:00–10:00"
	Domain10To15 = "10:00–15:00"
	Domain15To20 = "15:00–20:00"
	Domain20To30 = "20:00–30:00"
	Domain30Plus = "30:00+"
)

// Chips are the user facing time domain filters, in display order.
var Chips = []string{"1-5", "5-10", "10-15", "15-20", "20+"}

var chipPatterns = map[string][]*regexp.Regexp{
	"1-5":   {domainPattern(Domain1To5)},
	"5-10":  {domainPattern(Domain5To10)},
	"10-15": {domainPattern(Domain10To15)},
	"15-20": {domainPattern(Domain15To20)},
	"20+":   {domainPattern(Domain20To30), domainPattern(Domain30Plus)},
}

// domainPattern matches labels ending with the given range, where the range
// either starts the label or follows whitespace ("AMRAP 5:00–10:00").
func domainPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(label) + `$`)
}

var domainOrder = map[string]int{
	Domain1To5:   1,
	Domain5To10:  2,
	Domain10To15: 3,
	Domain15To20: 4,
	Domain20To30: 5,
	Domain30Plus: 6,
}

const unknownDomainOrder = 7

// legacy labels (hyphen with spaces) used by older metcon imports
var legacyDomains = map[string]string{
	"1:00 - 5:00":   Domain1To5,
	"5:00 - 10:00":  Domain5To10,
	"10:00 - 15:00": Domain10To15,
	"15:00 - 20:00": Domain15To20,
	"20:00 - 30:00": Domain20To30,
	"20:00+":        Domain20To30,
}

// ResolveVisibleDomains maps the selected chips onto the domains present in allDomains.
// No chips means all domains. Chips are resolved in selection order, each one contributing
// its matches in allDomains order; a domain is only listed the first time it is matched.
func ResolveVisibleDomains(allDomains, selectedChips []string) []string {
	if len(selectedChips) == 0 {
		return allDomains
	}

	visible := make([]string, 0, len(allDomains))
	seen := make(map[string]bool, len(allDomains))
	for _, chip := range selectedChips {
		patterns := chipPatterns[strings.TrimSpace(chip)]
		for _, domain := range allDomains {
			if seen[domain] || !matchesAny(patterns, domain) {
				continue
			}
			seen[domain] = true
			visible = append(visible, domain)
		}
	}

	return visible
}

func matchesAny(patterns []*regexp.Regexp, domain string) bool {
	for _, p := range patterns {
		if p.MatchString(domain) {
			return true
		}
	}
	return false
}

// DomainOrder returns the sort position of a time range; unknown ranges go last.
func DomainOrder(domain string) int {
	if order, ok := domainOrder[domain]; ok {
		return order
	}
	return unknownDomainOrder
}

// SortDomains sorts domains by duration bucket, keeping the input order of equal buckets.
func SortDomains(domains []string) {
	sort.SliceStable(domains, func(i, j int) bool {
		return DomainOrder(domains[i]) < DomainOrder(domains[j])
	})
}

// NormalizeTimeRange rewrites legacy time range labels to the canonical form.
func NormalizeTimeRange(label string) string {
	label = strings.TrimSpace(label)
	if canonical, ok := legacyDomains[label]; ok {
		return canonical
	}
	return label
}

// ParseChips splits a comma separated chip list ("1-5,20+"), dropping empty entries.
func ParseChips(raw string) []string {
	var chips []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			chips = append(chips, c)
		}
	}
	return chips
}
