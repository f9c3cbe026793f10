package application

import (
	"context"
	"fmt"
	"strconv"

	photoDomain "github.com/Kilat-Pet-Delivery/service-gallery/internal/domain/photo"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/metrics"
	"go.uber.org/zap"
)

// SeedImageURLs are the externally hosted images used by the seed routine.
var SeedImageURLs = []string{
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image.jpg",
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image-1.jpg",
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image-2.jpg",
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image-3.jpg",
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image-4.jpg",
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image-5.jpg",
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image-6.jpg",
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image-7.jpg",
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image-8.jpg",
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image-9.jpg",
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image-10.jpg",
	"https://flowbite.s3.amazonaws.com/docs/gallery/masonry/image-11.jpg",
}

// Seeder populates the photo store with the fixed gallery set.
type Seeder struct {
	repo    photoDomain.PhotoRepository
	metrics *metrics.GalleryMetrics
	logger  *zap.Logger
}

// NewSeeder creates a new Seeder.
func NewSeeder(repo photoDomain.PhotoRepository, metrics *metrics.GalleryMetrics, logger *zap.Logger) *Seeder {
	return &Seeder{repo: repo, metrics: metrics, logger: logger}
}

// Seed inserts the seed photos unconditionally and returns how many were written.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	photos, err := seedPhotos()
	if err != nil {
		return 0, err
	}
	if err := s.repo.SaveAll(ctx, photos); err != nil {
		return 0, fmt.Errorf("failed to seed photos: %w", err)
	}

	s.metrics.RecordSeeded(len(photos))
	s.logger.Info("photos seeded", zap.Int("count", len(photos)))
	return len(photos), nil
}

// SeedIfEmpty seeds only when the store holds no photos, so repeated runs do
// not create duplicates.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (int, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		s.logger.Info("photo store already populated, skipping seed", zap.Int64("count", total))
		return 0, nil
	}
	return s.Seed(ctx)
}

func seedPhotos() ([]*photoDomain.Photo, error) {
	photos := make([]*photoDomain.Photo, len(SeedImageURLs))
	for i, url := range SeedImageURLs {
		n := strconv.Itoa(i + 1)
		p, err := photoDomain.NewPhoto("Photo "+n, url, "Random description for photo "+n)
		if err != nil {
			return nil, err
		}
		photos[i] = p
	}
	return photos, nil
}
