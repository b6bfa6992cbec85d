package intent

import (
	"regexp"
	"strings"
)

// DefaultCity is used when nothing recognizable remains in the utterance.
const DefaultCity = "New York"

// Kind discriminates the two request shapes an utterance can resolve to.
type Kind string

const (
	KindSingleCity Kind = "single_city"
	KindCompare    Kind = "compare"
)

// Intent is the parsed form of a chat utterance. Extraction never fails: a
// single-city intent with DefaultCity is produced when no location survives.
type Intent struct {
	Kind  Kind
	City  string
	CityA string
	CityB string
}

// Comparison patterns are tried in textual order; the first match wins even
// when a later pattern would capture different groups.
var comparePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)compare\s+(.+?)\s+(?:and|vs|versus)\s+(.+)`),
	regexp.MustCompile(`(?i)(.+?)\s+vs\s+(.+)`),
	regexp.MustCompile(`(?i)(.+?)\s+versus\s+(.+)`),
}

var prepositionPattern = regexp.MustCompile(`(?i)\b(?:in|for|at)\s+(.+?)(?:\s+(?:today|tomorrow|tonight|right now|currently)\b|\?|$)`)

// Substrings removed from a captured comparison city, in order. These are
// unanchored on purpose: each replacement operates on the output of the
// previous one and can strike inside a longer word.
var compareStrips = []string{"compare", "weather in", "weather for", "weather", "the", "?"}

// Fillers stripped from the whole lowercased utterance when no location
// pattern matched, in order.
var fillerStrips = []string{
	"what's", "what is", "what",
	"the", "weather", "forecast",
	"wear", "should i",
	"today", "tomorrow", "tonight", "right now", "currently",
	"?",
}

var timeWordPattern = regexp.MustCompile(`(?i)\b(?:today|tomorrow|tonight|right now|currently)\b`)

// Extract parses a raw utterance into a comparison or single-city intent.
func Extract(utterance string) Intent {
	for _, pattern := range comparePatterns {
		if m := pattern.FindStringSubmatch(utterance); m != nil {
			return Intent{
				Kind:  KindCompare,
				CityA: cleanComparisonCity(m[1]),
				CityB: cleanComparisonCity(m[2]),
			}
		}
	}

	candidate := ""
	if m := prepositionPattern.FindStringSubmatch(utterance); m != nil {
		candidate = m[1]
	} else {
		candidate = strings.ToLower(utterance)
		for _, filler := range fillerStrips {
			candidate = strings.ReplaceAll(candidate, filler, "")
		}
	}

	candidate = finalCleanup(candidate)
	if candidate == "" {
		candidate = DefaultCity
	}
	return Intent{Kind: KindSingleCity, City: candidate}
}

func cleanComparisonCity(raw string) string {
	city := raw
	for _, strip := range compareStrips {
		city = stripAllFold(city, strip)
	}
	return finalCleanup(city)
}

// stripAllFold removes every case-insensitive occurrence of sub.
func stripAllFold(s, sub string) string {
	lowerSub := strings.ToLower(sub)
	var b strings.Builder
	lower := strings.ToLower(s)
	for {
		idx := strings.Index(lower, lowerSub)
		if idx < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:idx])
		s = s[idx+len(sub):]
		lower = lower[idx+len(sub):]
	}
}

// finalCleanup removes time-reference words as whole words only, unlike the
// substring passes above, then normalizes whitespace.
func finalCleanup(s string) string {
	s = timeWordPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
