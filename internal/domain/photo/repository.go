package photo

import "context"

// PhotoRepository defines persistence operations for photos.
type PhotoRepository interface {
	FindByID(ctx context.Context, id uint64) (*Photo, error)
	FindAll(ctx context.Context) ([]*Photo, error)
	Count(ctx context.Context) (int64, error)
	SaveAll(ctx context.Context, photos []*Photo) error
	// IncrementLikes atomically adds one like to the photo and returns the
	// post-increment state. Nothing is written when the id does not exist.
	IncrementLikes(ctx context.Context, id uint64) (*Photo, error)
}
