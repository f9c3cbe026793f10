package application

import (
	"context"
	"time"

	photoDomain "github.com/Kilat-Pet-Delivery/service-gallery/internal/domain/photo"
	"go.uber.org/zap"
)

// PhotoDTO is the API response representation of a photo.
type PhotoDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	LikesCount  int64     `json:"likes_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PhotoService handles photo read use cases.
type PhotoService struct {
	repo   photoDomain.PhotoRepository
	logger *zap.Logger
}

// NewPhotoService creates a new PhotoService.
func NewPhotoService(repo photoDomain.PhotoRepository, logger *zap.Logger) *PhotoService {
	return &PhotoService{repo: repo, logger: logger}
}

// ListPhotos returns every photo in insertion order.
func (s *PhotoService) ListPhotos(ctx context.Context) ([]*PhotoDTO, error) {
	photos, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list photos", zap.Error(err))
		return nil, err
	}

	dtos := make([]*PhotoDTO, len(photos))
	for i, p := range photos {
		dtos[i] = toPhotoDTO(p)
	}
	return dtos, nil
}

// GetPhoto returns a single photo by ID.
func (s *PhotoService) GetPhoto(ctx context.Context, id uint64) (*PhotoDTO, error) {
	photo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPhotoDTO(photo), nil
}

func toPhotoDTO(p *photoDomain.Photo) *PhotoDTO {
	return &PhotoDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		URL:         p.URL(),
		Description: p.Description(),
		LikesCount:  p.LikesCount(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}
