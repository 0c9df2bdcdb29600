package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berayon/review-bot/pkg/domain"
)

func TestBuildReviewMessage(t *testing.T) {
	app := domain.AppWatchConfig{
		AppID:   "123",
		AppName: "My App",
		Channel: "#reviews",
		BotIcon: ":robot_face:",
	}
	review := domain.Review{
		ID:      "r1",
		Title:   "Disappointed",
		Text:    "sync stopped working after the update",
		Rating:  "2",
		Author:  "jdoe",
		Version: "3.1.0",
		Region:  "us",
		Link:    "https://itunes.apple.com/us/review?id=r1",
		Updated: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	msg := BuildReviewMessage(&app, &review)

	assert.Equal(t, "#reviews", msg.Channel)
	assert.Equal(t, "My App", msg.Username)
	assert.Equal(t, ":robot_face:", msg.IconEmoji)
	assert.Empty(t, msg.IconURL)

	require.Len(t, msg.Attachments, 1)
	att := msg.Attachments[0]
	assert.Equal(t, "danger", att.Color)
	assert.Equal(t, "★★☆☆☆ Disappointed", att.Title)
	assert.Equal(t, review.Link, att.TitleLink)
	assert.Equal(t, review.Text, att.Text)
	assert.Equal(t, "by jdoe · US · v3.1.0", att.Footer)
	assert.Equal(t, review.Updated.Unix(), att.Timestamp)
}

func TestBuildReviewMessage_Fallbacks(t *testing.T) {
	app := domain.AppWatchConfig{
		AppID:   "123",
		BotIcon: "https://example.com/icon.png",
	}
	review := domain.Review{ID: "r1", Text: "no title, no author", Rating: "bad-value"}

	msg := BuildReviewMessage(&app, &review)

	assert.Equal(t, "123", msg.Username, "app id stands in for a missing name")
	assert.Equal(t, "https://example.com/icon.png", msg.IconURL)
	assert.Empty(t, msg.IconEmoji)

	require.Len(t, msg.Attachments, 1)
	att := msg.Attachments[0]
	assert.Empty(t, att.Color, "unparsable rating gets no color")
	assert.Empty(t, att.Title, "no stars and no title")
	assert.Empty(t, att.Footer)
	assert.Zero(t, att.Timestamp)
}

func TestStars(t *testing.T) {
	tests := []struct {
		rating string
		want   string
	}{
		{"5", "★★★★★"},
		{"4", "★★★★☆"},
		{"1", "★☆☆☆☆"},
		{"0", "☆☆☆☆☆"},
		{" 3 ", "★★★☆☆"},
		{"6", ""},
		{"-1", ""},
		{"five", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.rating), "rating %q", tt.rating)
	}
}

func TestRatingColor(t *testing.T) {
	assert.Equal(t, "good", ratingColor("5"))
	assert.Equal(t, "good", ratingColor("4"))
	assert.Equal(t, "warning", ratingColor("3"))
	assert.Equal(t, "danger", ratingColor("2"))
	assert.Equal(t, "danger", ratingColor("1"))
	assert.Empty(t, ratingColor("n/a"))
}
