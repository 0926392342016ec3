package headline

import (
	"strings"
)

// removedPlaceholder is the title NewsAPI substitutes for withdrawn articles.
const removedPlaceholder = "[Removed]"

// Filter drops headlines that should not reach the pairer.
type Filter struct {
	blockedTerms []string
}

// FilterConfig holds filter configuration.
type FilterConfig struct {
	BlockedTerms []string
}

// NewFilter creates a new filter.
func NewFilter(cfg FilterConfig) *Filter {
	terms := make([]string, 0, len(cfg.BlockedTerms))
	for _, term := range cfg.BlockedTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			terms = append(terms, term)
		}
	}

	return &Filter{blockedTerms: terms}
}

// FilterResult contains the filter decision.
type FilterResult struct {
	Pass   bool
	Reason string
}

// Check examines a headline and returns whether it should be kept.
func (f *Filter) Check(h Headline) FilterResult {
	title := strings.TrimSpace(h.Title)
	if title == "" {
		return FilterResult{
			Pass:   false,
			Reason: "empty title",
		}
	}

	if title == removedPlaceholder {
		return FilterResult{
			Pass:   false,
			Reason: "removed article",
		}
	}

	title = strings.ToLower(title)
	for _, term := range f.blockedTerms {
		if strings.Contains(title, term) {
			return FilterResult{
				Pass:   false,
				Reason: "contains blocked term: " + term,
			}
		}
	}

	return FilterResult{Pass: true}
}

// Apply returns the headlines that pass, in their original order.
func (f *Filter) Apply(headlines []Headline) []Headline {
	result := make([]Headline, 0, len(headlines))

	for _, h := range headlines {
		if check := f.Check(h); check.Pass {
			result = append(result, h)
		}
	}

	return result
}
