package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/api/androidpublisher/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/berayon/review-bot/pkg/domain"
)

// PlayStoreSource fetches reviews through the Google Play publisher API
// using a service account key. The API only returns recent reviews and
// translates comment text to the requested region's language; the region
// value doubles as the translation language.
type PlayStoreSource struct {
	reviews playReviewsAPI
}

// playReviewsAPI is the slice of androidpublisher we depend on
type playReviewsAPI interface {
	list(ctx context.Context, appID, lang string) (*androidpublisher.ReviewsListResponse, error)
}

// NewPlayStoreSource creates a Play Store source from a service account
// key file (the publisherKey config value).
func NewPlayStoreSource(ctx context.Context, keyPath string) (*PlayStoreSource, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("publisher key path is required for google-play")
	}

	svc, err := androidpublisher.NewService(ctx,
		option.WithCredentialsFile(keyPath),
		option.WithScopes(androidpublisher.AndroidpublisherScope))
	if err != nil {
		return nil, fmt.Errorf("create androidpublisher service: %w", err)
	}

	return &PlayStoreSource{reviews: &playReviewsService{svc: svc}}, nil
}

// Fetch retrieves recent reviews for the app, ordered oldest-first
func (s *PlayStoreSource) Fetch(ctx context.Context, appID, region string) ([]domain.Review, error) {
	resp, err := s.reviews.list(ctx, appID, region)
	if err != nil {
		return nil, mapPlayError(err)
	}

	reviews := make([]domain.Review, 0, len(resp.Reviews))
	for _, r := range resp.Reviews {
		review, ok := toReview(r, appID, region)
		if !ok {
			continue
		}
		reviews = append(reviews, review)
	}

	// API returns newest first, deliver oldest-first
	for i, j := 0, len(reviews)-1; i < j; i, j = i+1, j-1 {
		reviews[i], reviews[j] = reviews[j], reviews[i]
	}

	return reviews, nil
}

// toReview converts an androidpublisher review; drops entries without a
// user comment (e.g. developer-reply-only records).
func toReview(r *androidpublisher.Review, appID, region string) (domain.Review, bool) {
	if r == nil || len(r.Comments) == 0 || r.Comments[0].UserComment == nil {
		return domain.Review{}, false
	}
	uc := r.Comments[0].UserComment

	review := domain.Review{
		ID:      r.ReviewId,
		Text:    uc.Text,
		Rating:  strconv.FormatInt(uc.StarRating, 10),
		Author:  r.AuthorName,
		Version: uc.AppVersionName,
		Region:  region,
		Link:    fmt.Sprintf("https://play.google.com/store/apps/details?id=%s&reviewId=%s", appID, r.ReviewId),
	}
	if uc.LastModified != nil {
		review.Updated = time.Unix(uc.LastModified.Seconds, uc.LastModified.Nanos)
	}
	return review, true
}

// mapPlayError translates googleapi failures to the source error taxonomy
func mapPlayError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return &RateLimitedError{}
	}
	return fmt.Errorf("list reviews: %w: %w", ErrUnavailable, err)
}

// playReviewsService is the real androidpublisher-backed implementation
type playReviewsService struct {
	svc *androidpublisher.Service
}

func (p *playReviewsService) list(ctx context.Context, appID, lang string) (*androidpublisher.ReviewsListResponse, error) {
	call := p.svc.Reviews.List(appID).MaxResults(100)
	if lang != "" {
		call = call.TranslationLanguage(lang)
	}
	return call.Context(ctx).Do()
}
