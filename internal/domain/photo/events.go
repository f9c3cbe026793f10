package photo

import "time"

// Event types published and consumed by the gallery service.
const (
	EventPhotoLiked         = "gallery.photo.liked"
	EventPhotoLikeRequested = "gallery.photo.like_requested"
)

// EventSource identifies this service in event envelopes.
const EventSource = "service-gallery"

// LikedEvent is emitted after a like has been committed.
type LikedEvent struct {
	PhotoID    uint64    `json:"photo_id"`
	LikesCount int64     `json:"likes_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LikeRequestedEvent asks the service to record one like for a photo.
type LikeRequestedEvent struct {
	PhotoID uint64 `json:"photo_id"`
}
