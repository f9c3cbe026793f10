package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-gallery/internal/application"
	photoDomain "github.com/Kilat-Pet-Delivery/service-gallery/internal/domain/photo"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/apperror"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/kafka"
)

// LikeRequestConsumer applies likes requested by other services over Kafka.
type LikeRequestConsumer struct {
	consumer *kafka.Consumer
	service  *application.LikeService
	logger   *zap.Logger
}

// NewLikeRequestConsumer creates a new LikeRequestConsumer.
func NewLikeRequestConsumer(
	brokers []string,
	groupID string,
	topic string,
	service *application.LikeService,
	logger *zap.Logger,
) *LikeRequestConsumer {
	return &LikeRequestConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, topic, logger),
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming like requests. This blocks until the context is cancelled.
func (c *LikeRequestConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *LikeRequestConsumer) Close() error {
	return c.consumer.Close()
}

func (c *LikeRequestConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from like request topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case photoDomain.EventPhotoLikeRequested:
		return c.handleLikeRequested(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *LikeRequestConsumer) handleLikeRequested(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt photoDomain.LikeRequestedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse LikeRequestedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	photo, err := c.service.IncrementLikes(ctx, evt.PhotoID)
	if err != nil {
		if apperror.IsNotFound(err) {
			c.logger.Warn("like requested for unknown photo",
				zap.Uint64("photo_id", evt.PhotoID),
				zap.String("event_id", cloudEvent.ID),
			)
			return nil
		}
		return err
	}

	c.logger.Info("like request applied",
		zap.Uint64("photo_id", photo.ID),
		zap.Int64("likes_count", photo.LikesCount),
		zap.String("event_id", cloudEvent.ID),
	)
	return nil
}
