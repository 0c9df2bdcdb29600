package source

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/berayon/review-bot/pkg/domain"
)

// appStoreFeedURL is the public iTunes customer reviews feed, most recent
// reviews first.
const appStoreFeedURL = "https://itunes.apple.com/%s/rss/customerreviews/page=1/id=%s/sortby=mostrecent/xml"

// AppStoreSource fetches reviews from the Apple App Store public RSS feed.
// No credentials required.
type AppStoreSource struct {
	client    *http.Client
	userAgent string
	sanitizer *bluemonday.Policy
	feedURL   string // overridable in tests
}

// NewAppStoreSource creates an App Store review source
func NewAppStoreSource(timeout time.Duration, userAgent string) *AppStoreSource {
	return &AppStoreSource{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		sanitizer: bluemonday.StrictPolicy(),
		feedURL:   appStoreFeedURL,
	}
}

// Fetch retrieves the current reviews for the app in one region, ordered
// oldest-first.
func (s *AppStoreSource) Fetch(ctx context.Context, appID, region string) ([]domain.Review, error) {
	url := fmt.Sprintf(s.feedURL, region, appID)

	body, err := s.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse reviews feed: %w", err)
	}

	reviews := make([]domain.Review, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		rating := imExtension(item, "rating")
		if rating == "" {
			// the feed's first entry describes the app itself, not a review
			continue
		}

		review := domain.Review{
			ID:      item.GUID,
			Title:   item.Title,
			Text:    s.plainText(item.Content),
			Rating:  rating,
			Version: imExtension(item, "version"),
			Region:  region,
			Link:    item.Link,
		}
		if review.Text == "" {
			review.Text = s.plainText(item.Description)
		}
		if item.Author != nil {
			review.Author = item.Author.Name
		}
		if item.UpdatedParsed != nil {
			review.Updated = *item.UpdatedParsed
		} else if item.PublishedParsed != nil {
			review.Updated = *item.PublishedParsed
		}

		reviews = append(reviews, review)
	}

	// feed is most-recent-first, deliver oldest-first
	for i, j := 0, len(reviews)-1; i < j; i, j = i+1, j-1 {
		reviews[i], reviews[j] = reviews[j], reviews[i]
	}

	return reviews, nil
}

// get retrieves the feed, mapping HTTP failures to the source error taxonomy
func (s *AppStoreSource) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch reviews feed: %w: %w", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		_ = resp.Body.Close()
		return nil, &RateLimitedError{RetryAfter: retryAfter}
	default:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d: %w", resp.StatusCode, ErrUnavailable)
	}
}

// plainText strips any markup the store may embed in review text
func (s *AppStoreSource) plainText(text string) string {
	return html.UnescapeString(s.sanitizer.Sanitize(text))
}

// imExtension extracts an itunes "im" namespace extension value, e.g.
// im:rating or im:version
func imExtension(item *gofeed.Item, name string) string {
	ns, ok := item.Extensions["im"]
	if !ok {
		return ""
	}
	values, ok := ns[name]
	if !ok || len(values) == 0 {
		return ""
	}
	return values[0].Value
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
