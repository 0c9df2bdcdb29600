package notify

import (
	"strconv"
	"strings"

	"github.com/berayon/review-bot/pkg/domain"
)

// BuildReviewMessage formats one review as a Slack message for the app's
// configured channel.
func BuildReviewMessage(app *domain.AppWatchConfig, review *domain.Review) Message {
	msg := Message{
		Channel:  app.Channel,
		Username: app.AppName,
	}
	if msg.Username == "" {
		msg.Username = app.AppID
	}

	switch {
	case strings.HasPrefix(app.BotIcon, "http://"), strings.HasPrefix(app.BotIcon, "https://"):
		msg.IconURL = app.BotIcon
	case app.BotIcon != "":
		msg.IconEmoji = app.BotIcon
	}

	att := Attachment{
		Color:     ratingColor(review.Rating),
		Title:     attachmentTitle(review),
		TitleLink: review.Link,
		Text:      review.Text,
		Footer:    attachmentFooter(review),
	}
	if !review.Updated.IsZero() {
		att.Timestamp = review.Updated.Unix()
	}

	msg.Attachments = []Attachment{att}
	return msg
}

// attachmentTitle renders the star row plus the review title when present
func attachmentTitle(review *domain.Review) string {
	title := Stars(review.Rating)
	if review.Title != "" {
		if title != "" {
			title += " "
		}
		title += review.Title
	}
	return title
}

func attachmentFooter(review *domain.Review) string {
	parts := make([]string, 0, 3)
	if review.Author != "" {
		parts = append(parts, "by "+review.Author)
	}
	if review.Region != "" {
		parts = append(parts, strings.ToUpper(review.Region))
	}
	if review.Version != "" {
		parts = append(parts, "v"+review.Version)
	}
	return strings.Join(parts, " · ")
}

// Stars renders a rating as filled and empty stars, empty string for a
// rating that doesn't parse.
func Stars(rating string) string {
	n, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil || n < 0 || n > 5 {
		return ""
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// ratingColor maps a rating to the attachment sidebar color
func ratingColor(rating string) string {
	n, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil {
		return ""
	}
	switch {
	case n >= 4:
		return "good"
	case n == 3:
		return "warning"
	default:
		return "danger"
	}
}
