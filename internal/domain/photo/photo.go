package photo

import (
	"fmt"
	"time"
)

// Photo is the aggregate root for a gallery image and its like counter.
type Photo struct {
	id          uint64
	name        string
	url         string
	description string
	likesCount  int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPhoto creates a photo that has not been persisted yet. The store assigns its id.
func NewPhoto(name, url, description string) (*Photo, error) {
	if name == "" {
		return nil, fmt.Errorf("photo name is required")
	}
	if url == "" {
		return nil, fmt.Errorf("photo URL is required")
	}

	now := time.Now().UTC()
	return &Photo{
		name:        name,
		url:         url,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Photo from persistence.
func Reconstruct(id uint64, name, url, description string, likesCount int64, createdAt, updatedAt time.Time) *Photo {
	return &Photo{
		id:          id,
		name:        name,
		url:         url,
		description: description,
		likesCount:  likesCount,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters.
func (p *Photo) ID() uint64           { return p.id }
func (p *Photo) Name() string         { return p.name }
func (p *Photo) URL() string          { return p.url }
func (p *Photo) Description() string  { return p.description }
func (p *Photo) LikesCount() int64    { return p.likesCount }
func (p *Photo) CreatedAt() time.Time { return p.createdAt }
func (p *Photo) UpdatedAt() time.Time { return p.updatedAt }

// IsPersisted reports whether the store has assigned an id.
func (p *Photo) IsPersisted() bool { return p.id != 0 }

// AssignID records the id chosen by the store. It is a no-op once an id is set.
func (p *Photo) AssignID(id uint64) {
	if p.id == 0 {
		p.id = id
	}
}
