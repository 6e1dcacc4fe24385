package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ManishKhulbe/tacticaledge-assignment/internal/models"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/shared"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) FindOne(ctx context.Context, id, userID uint) (*models.Movie, error) {
	var m models.Movie
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepository) FindAndCount(ctx context.Context, userID uint, offset, limit int) ([]models.Movie, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movies []models.Movie
	// id DESC breaks createdAt ties so page boundaries stay stable
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

func (r *MovieRepository) Save(ctx context.Context, m *models.Movie) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MovieRepository) Delete(ctx context.Context, m *models.Movie) error {
	return r.db.WithContext(ctx).Delete(m).Error
}
