package application_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	photoDomain "github.com/Kilat-Pet-Delivery/service-gallery/internal/domain/photo"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/apperror"
)

func TestIncrementLikesFromFive(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.likes.IncrementLikes(ctx, 1)
		require.NoError(t, err)
	}
	before, err := s.photos.GetPhoto(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(5), before.LikesCount)

	liked, err := s.likes.IncrementLikes(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), liked.ID)
	assert.Equal(t, int64(6), liked.LikesCount)
	assert.False(t, liked.UpdatedAt.Before(liked.CreatedAt))

	after, err := s.photos.GetPhoto(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(6), after.LikesCount)
}

func TestIncrementLikesIsMonotonic(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	var previous int64
	for i := 0; i < 10; i++ {
		liked, err := s.likes.IncrementLikes(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, previous+1, liked.LikesCount)
		previous = liked.LikesCount
	}
}

func TestIncrementLikesUnknownPhoto(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	before, err := s.photos.ListPhotos(ctx)
	require.NoError(t, err)

	_, err = s.likes.IncrementLikes(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	after, err := s.photos.ListPhotos(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "store state must be unchanged")
	assert.Empty(t, s.publisher.published())

	expected := `
# HELP gallery_photo_like_errors_total Total number of rejected or failed like operations
# TYPE gallery_photo_like_errors_total counter
gallery_photo_like_errors_total{reason="not_found"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(s.metrics.Registry(), strings.NewReader(expected), "gallery_photo_like_errors_total"))
}

func TestIncrementLikesConcurrentNoLostUpdates(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.likes.IncrementLikes(ctx, 7); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.photos.GetPhoto(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.LikesCount)
	assert.Len(t, s.publisher.published(), n)
}

func TestIncrementLikesPublishesLikedEvent(t *testing.T) {
	s := seeded(t)

	liked, err := s.likes.IncrementLikes(context.Background(), 2)
	require.NoError(t, err)

	events := s.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, []string{testEventsTopic}, s.publisher.topics)
	assert.Equal(t, photoDomain.EventPhotoLiked, events[0].Type)
	assert.Equal(t, photoDomain.EventSource, events[0].Source)
	assert.Equal(t, "photos/2", events[0].Subject)

	var evt photoDomain.LikedEvent
	require.NoError(t, events[0].ParseData(&evt))
	assert.Equal(t, uint64(2), evt.PhotoID)
	assert.Equal(t, liked.LikesCount, evt.LikesCount)
}

func TestIncrementLikesSurvivesPublishFailure(t *testing.T) {
	s := seeded(t)
	s.publisher.fail = true

	liked, err := s.likes.IncrementLikes(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.LikesCount)

	expected := `
# HELP gallery_event_publish_errors_total Total number of domain events that could not be published
# TYPE gallery_event_publish_errors_total counter
gallery_event_publish_errors_total{type="gallery.photo.liked"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(s.metrics.Registry(), strings.NewReader(expected), "gallery_event_publish_errors_total"))
}
