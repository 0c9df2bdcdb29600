package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/androidpublisher/v3"
	"google.golang.org/api/googleapi"
)

type fakePlayReviews struct {
	resp *androidpublisher.ReviewsListResponse
	err  error

	gotAppID string
	gotLang  string
}

func (f *fakePlayReviews) list(_ context.Context, appID, lang string) (*androidpublisher.ReviewsListResponse, error) {
	f.gotAppID = appID
	f.gotLang = lang
	return f.resp, f.err
}

func playReview(id, author, text string, stars int64, modified time.Time) *androidpublisher.Review {
	return &androidpublisher.Review{
		ReviewId:   id,
		AuthorName: author,
		Comments: []*androidpublisher.Comment{
			{UserComment: &androidpublisher.UserComment{
				Text:           text,
				StarRating:     stars,
				AppVersionName: "3.2",
				LastModified:   &androidpublisher.Timestamp{Seconds: modified.Unix()},
			}},
		},
	}
}

func TestPlayStoreSource_Fetch(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	fake := &fakePlayReviews{
		resp: &androidpublisher.ReviewsListResponse{
			Reviews: []*androidpublisher.Review{
				playReview("r2", "carol", "newest review", 5, now),
				playReview("r1", "dave", "older review", 2, now.Add(-time.Hour)),
				{ReviewId: "r0"}, // no user comment, dropped
			},
		},
	}
	s := &PlayStoreSource{reviews: fake}

	reviews, err := s.Fetch(context.Background(), "com.example.app", "de")
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, "com.example.app", fake.gotAppID)
	assert.Equal(t, "de", fake.gotLang)

	// oldest first
	assert.Equal(t, "r1", reviews[0].ID)
	assert.Equal(t, "2", reviews[0].Rating)
	assert.Equal(t, "dave", reviews[0].Author)
	assert.Equal(t, now.Add(-time.Hour).Unix(), reviews[0].Updated.Unix())

	assert.Equal(t, "r2", reviews[1].ID)
	assert.Equal(t, "5", reviews[1].Rating)
	assert.Equal(t, "3.2", reviews[1].Version)
	assert.Equal(t, "de", reviews[1].Region)
	assert.Contains(t, reviews[1].Link, "com.example.app")
}

func TestPlayStoreSource_ErrorMapping(t *testing.T) {
	t.Run("rate limited", func(t *testing.T) {
		fake := &fakePlayReviews{err: &googleapi.Error{Code: http.StatusTooManyRequests}}
		s := &PlayStoreSource{reviews: fake}

		_, err := s.Fetch(context.Background(), "com.example.app", "us")
		require.Error(t, err)

		var rateErr *RateLimitedError
		assert.ErrorAs(t, err, &rateErr)
	})

	t.Run("other failures are unavailable", func(t *testing.T) {
		fake := &fakePlayReviews{err: fmt.Errorf("connection refused")}
		s := &PlayStoreSource{reviews: fake}

		_, err := s.Fetch(context.Background(), "com.example.app", "us")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})
}

func TestNewPlayStoreSource_RequiresKey(t *testing.T) {
	_, err := NewPlayStoreSource(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publisher key")
}
