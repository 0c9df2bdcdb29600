// Package filter decides whether a fetched review is low-signal noise.
// Only five-star reviews are ever suppressed: the point is to drop
// generic praise, never to hide critical feedback.
package filter

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/berayon/review-bot/pkg/domain"
)

// Reason explains why a review should be skipped. Empty reason means
// the review passes and should be delivered.
type Reason string

// Skip reasons returned by SkipReason.
const (
	ReasonNone        Reason = ""
	ReasonEmptyText   Reason = "empty_text"
	ReasonShortText   Reason = "short_text"
	ReasonPopularText Reason = "popular_text"
)

// DefaultMinTextLength is the built-in minimum trimmed text length for
// five-star reviews when the config doesn't set one.
const DefaultMinTextLength = 10

// DefaultPopularPhrases is the built-in list of generic praise phrases,
// used when the config doesn't provide its own list.
var DefaultPopularPhrases = []string{
	"best",
	"best app",
	"love it",
	"good",
	"okay",
	"ok",
	"oke",
	"top",
	"top app",
	"op",
	"nice",
	"beautiful",
	"cool",
	"mantap",
	"bagus",
	"keren",
	"good apk",
	"good app",
	"bom",
	"класс",
}

// SkipReason returns the reason a review should be suppressed, or ReasonNone
// if it should be delivered. Ratings other than exactly 5 always pass,
// including ratings that don't parse as an integer at all.
func SkipReason(review *domain.Review, cfg domain.FilterConfig) Reason {
	if review == nil {
		return ReasonNone
	}

	rating, err := strconv.Atoi(strings.TrimSpace(review.Rating))
	if err != nil || rating != 5 {
		return ReasonNone
	}

	trimmed := strings.TrimSpace(review.Text)
	if trimmed == "" {
		return ReasonEmptyText
	}

	minLen, phrases := resolve(cfg)
	if utf8.RuneCountInString(trimmed) < minLen {
		return ReasonShortText
	}

	if isPopularPhrase(trimmed, phrases) {
		return ReasonPopularText
	}

	return ReasonNone
}

// ShouldSkip reports whether the review should be suppressed.
func ShouldSkip(review *domain.Review, cfg domain.FilterConfig) bool {
	return SkipReason(review, cfg) != ReasonNone
}

// Normalize lowercases the text, replaces every character that is not a
// unicode letter, digit or whitespace with a space, collapses whitespace
// runs and trims. Idempotent.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, lowered)
	return strings.Join(strings.Fields(cleaned), " ")
}

// resolve applies built-in defaults to an incomplete filter config.
// A nil phrase list falls back to the defaults; an explicitly empty list
// disables phrase matching but keeps the length check.
func resolve(cfg domain.FilterConfig) (minLen int, phrases []string) {
	minLen = cfg.MinTextLength
	if minLen <= 0 {
		minLen = DefaultMinTextLength
	}

	source := cfg.PopularPhrases
	if source == nil {
		source = DefaultPopularPhrases
	}

	phrases = make([]string, 0, len(source))
	for _, p := range source {
		if normalized := Normalize(p); normalized != "" {
			phrases = append(phrases, normalized)
		}
	}
	return minLen, phrases
}

// isPopularPhrase reports whether the normalized text matches a configured
// phrase exactly, or consists entirely of tokens that are each a configured
// single-word phrase. Multi-word phrases never match by token membership.
func isPopularPhrase(text string, phrases []string) bool {
	normalized := Normalize(text)
	if normalized == "" || len(phrases) == 0 {
		return false
	}

	singleWords := make(map[string]struct{})
	for _, p := range phrases {
		if p == normalized {
			return true
		}
		if !strings.Contains(p, " ") {
			singleWords[p] = struct{}{}
		}
	}

	if len(singleWords) == 0 {
		return false
	}

	tokens := strings.Fields(normalized)
	for _, tok := range tokens {
		if _, ok := singleWords[tok]; !ok {
			return false
		}
	}
	return len(tokens) > 0
}
