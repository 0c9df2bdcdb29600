package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/berayon/review-bot/pkg/domain"
)

func TestSkipReason(t *testing.T) {
	tests := []struct {
		name   string
		review *domain.Review
		cfg    domain.FilterConfig
		want   Reason
	}{
		{
			name:   "nil review passes",
			review: nil,
			want:   ReasonNone,
		},
		{
			name:   "non-numeric rating passes regardless of text",
			review: &domain.Review{Rating: "five", Text: "ok"},
			want:   ReasonNone,
		},
		{
			name:   "low rating passes with short text",
			review: &domain.Review{Rating: "1", Text: "bad"},
			want:   ReasonNone,
		},
		{
			name:   "four stars pass with critical text",
			review: &domain.Review{Rating: "4", Text: "Not perfect"},
			want:   ReasonNone,
		},
		{
			name:   "five stars empty text",
			review: &domain.Review{Rating: "5", Text: ""},
			want:   ReasonEmptyText,
		},
		{
			name:   "five stars whitespace only text",
			review: &domain.Review{Rating: "5", Text: "   \n\t "},
			want:   ReasonEmptyText,
		},
		{
			name:   "five stars short text",
			review: &domain.Review{Rating: "5", Text: "Nice"},
			want:   ReasonShortText,
		},
		{
			name:   "five stars popular phrase",
			review: &domain.Review{Rating: "5", Text: "Best app"},
			want:   ReasonPopularText,
		},
		{
			name:   "five stars popular phrase with punctuation and case",
			review: &domain.Review{Rating: "5", Text: "  BEST APP!!! "},
			want:   ReasonPopularText,
		},
		{
			name:   "five stars all tokens are single-word phrases",
			review: &domain.Review{Rating: "5", Text: "Ok ok ok ok"},
			want:   ReasonPopularText,
		},
		{
			name:   "five stars genuine review passes",
			review: &domain.Review{Rating: "5", Text: "This application solved my problem quickly."},
			want:   ReasonNone,
		},
		{
			name:   "rating with surrounding spaces still filtered",
			review: &domain.Review{Rating: " 5 ", Text: "good"},
			want:   ReasonShortText,
		},
		{
			name:   "cyrillic popular phrase",
			review: &domain.Review{Rating: "5", Text: "Класс!!!!!!!!"},
			want:   ReasonPopularText,
		},
		{
			name:   "custom config passes text not in custom phrases",
			review: &domain.Review{Rating: "5", Text: "Okay product"},
			cfg:    domain.FilterConfig{MinTextLength: 5, PopularPhrases: []string{"super"}},
			want:   ReasonNone,
		},
		{
			name:   "custom min length shorter text skipped",
			review: &domain.Review{Rating: "5", Text: "fine"},
			cfg:    domain.FilterConfig{MinTextLength: 5, PopularPhrases: []string{"super"}},
			want:   ReasonShortText,
		},
		{
			name:   "length exactly at minimum passes",
			review: &domain.Review{Rating: "5", Text: "абвгдеёжзи"}, // 10 runes
			want:   ReasonNone,
		},
		{
			name:   "multi-word phrase requires exact match",
			review: &domain.Review{Rating: "5", Text: "app best forever yes"},
			cfg:    domain.FilterConfig{PopularPhrases: []string{"best app forever"}},
			want:   ReasonNone,
		},
		{
			name:   "empty phrase list disables phrase skip but not length skip",
			review: &domain.Review{Rating: "5", Text: "best app best app"},
			cfg:    domain.FilterConfig{PopularPhrases: []string{}},
			want:   ReasonNone,
		},
		{
			name:   "empty phrase list still skips short text",
			review: &domain.Review{Rating: "5", Text: "short"},
			cfg:    domain.FilterConfig{PopularPhrases: []string{}},
			want:   ReasonShortText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SkipReason(tt.review, tt.cfg))
		})
	}
}

func TestShouldSkip(t *testing.T) {
	assert.True(t, ShouldSkip(&domain.Review{Rating: "5", Text: "good"}, domain.FilterConfig{}))
	assert.False(t, ShouldSkip(&domain.Review{Rating: "3", Text: "good"}, domain.FilterConfig{}))
	assert.False(t, ShouldSkip(nil, domain.FilterConfig{}))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and punctuation", "Best App!!!", "best app"},
		{"collapse whitespace", "  so   much\t\tspace \n", "so much space"},
		{"unicode letters kept", "Класс, приложение!", "класс приложение"},
		{"digits kept", "10/10 would use", "10 10 would use"},
		{"only punctuation", "?!...", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}
