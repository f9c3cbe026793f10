package application

import (
	"context"
	"strconv"

	photoDomain "github.com/Kilat-Pet-Delivery/service-gallery/internal/domain/photo"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/apperror"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/metrics"
	"go.uber.org/zap"
)

// LikeService applies likes to photos.
type LikeService struct {
	repo        photoDomain.PhotoRepository
	publisher   kafka.Publisher
	eventsTopic string
	metrics     *metrics.GalleryMetrics
	logger      *zap.Logger
}

// NewLikeService creates a new LikeService. Liked events are published to eventsTopic.
func NewLikeService(
	repo photoDomain.PhotoRepository,
	publisher kafka.Publisher,
	eventsTopic string,
	metrics *metrics.GalleryMetrics,
	logger *zap.Logger,
) *LikeService {
	return &LikeService{
		repo:        repo,
		publisher:   publisher,
		eventsTopic: eventsTopic,
		metrics:     metrics,
		logger:      logger,
	}
}

// IncrementLikes adds exactly one like to the photo and returns its
// post-increment state. Unknown ids fail with a NotFound error and write nothing.
func (s *LikeService) IncrementLikes(ctx context.Context, id uint64) (*PhotoDTO, error) {
	photo, err := s.repo.IncrementLikes(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			s.metrics.RecordLikeError("not_found")
			return nil, err
		}
		s.metrics.RecordLikeError("store")
		s.logger.Error("failed to increment likes",
			zap.Uint64("photo_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.RecordLike()
	s.logger.Info("photo liked",
		zap.Uint64("photo_id", photo.ID()),
		zap.Int64("likes_count", photo.LikesCount()),
	)

	s.publishLiked(ctx, photo)
	return toPhotoDTO(photo), nil
}

// publishLiked is best effort; the like is already committed.
func (s *LikeService) publishLiked(ctx context.Context, photo *photoDomain.Photo) {
	evt := photoDomain.LikedEvent{
		PhotoID:    photo.ID(),
		LikesCount: photo.LikesCount(),
		OccurredAt: photo.UpdatedAt(),
	}
	cloudEvent, err := kafka.NewCloudEvent(photoDomain.EventSource, photoDomain.EventPhotoLiked, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event", zap.Error(err))
		return
	}
	cloudEvent.Subject = cloudEventSubject(photo.ID())

	if err := s.publisher.PublishEvent(ctx, s.eventsTopic, cloudEvent); err != nil {
		s.metrics.RecordPublishError(photoDomain.EventPhotoLiked)
		s.logger.Error("failed to publish event",
			zap.String("type", photoDomain.EventPhotoLiked),
			zap.Uint64("photo_id", photo.ID()),
			zap.Error(err),
		)
	}
}

func cloudEventSubject(id uint64) string {
	return "photos/" + strconv.FormatUint(id, 10)
}
