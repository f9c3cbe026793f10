package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	photoDomain "github.com/Kilat-Pet-Delivery/service-gallery/internal/domain/photo"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/apperror"
)

const seedBatchSize = 100

// PhotoModel is the GORM model for the photos table.
type PhotoModel struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(255)"`
	URL         string    `gorm:"column:url;type:varchar(255)"`
	Description string    `gorm:"type:text"`
	LikesCount  int64     `gorm:"type:integer;not null;default:0;check:chk_photos_likes_count,likes_count >= 0"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (PhotoModel) TableName() string { return "photos" }

// GormPhotoRepository implements PhotoRepository using GORM.
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository.
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// FindByID returns a single photo by ID.
func (r *GormPhotoRepository) FindByID(ctx context.Context, id uint64) (*photoDomain.Photo, error) {
	var model PhotoModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("failed to find photo by ID: %w", err)
	}
	return toPhotoDomain(&model), nil
}

// FindAll returns every photo in insertion order.
func (r *GormPhotoRepository) FindAll(ctx context.Context) ([]*photoDomain.Photo, error) {
	var models []PhotoModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	photos := make([]*photoDomain.Photo, len(models))
	for i := range models {
		photos[i] = toPhotoDomain(&models[i])
	}
	return photos, nil
}

// Count returns the number of stored photos.
func (r *GormPhotoRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PhotoModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return total, nil
}

// SaveAll inserts new photos in one batch and assigns the store ids back.
func (r *GormPhotoRepository) SaveAll(ctx context.Context, photos []*photoDomain.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	models := make([]PhotoModel, len(photos))
	for i, p := range photos {
		models[i] = toPhotoModel(p)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(&models, seedBatchSize).Error; err != nil {
		return fmt.Errorf("failed to save photos: %w", err)
	}

	for i := range models {
		photos[i].AssignID(models[i].ID)
	}
	return nil
}

// IncrementLikes adds one like inside a transaction. The increment is a single
// UPDATE evaluated by the database, so concurrent calls never lose an update.
func (r *GormPhotoRepository) IncrementLikes(ctx context.Context, id uint64) (*photoDomain.Photo, error) {
	var model PhotoModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&PhotoModel{}).
			Where("id = ?", id).
			UpdateColumns(map[string]interface{}{
				"likes_count": gorm.Expr("likes_count + ?", 1),
				"updated_at":  time.Now().UTC(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to increment likes: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return notFound(id)
		}

		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			return fmt.Errorf("failed to reload photo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPhotoDomain(&model), nil
}

func notFound(id uint64) error {
	return apperror.NewNotFoundError("Photo", strconv.FormatUint(id, 10))
}

func toPhotoModel(p *photoDomain.Photo) PhotoModel {
	return PhotoModel{
		ID:          p.ID(),
		Name:        p.Name(),
		URL:         p.URL(),
		Description: p.Description(),
		LikesCount:  p.LikesCount(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toPhotoDomain(m *PhotoModel) *photoDomain.Photo {
	return photoDomain.Reconstruct(
		m.ID,
		m.Name,
		m.URL,
		m.Description,
		m.LikesCount,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
