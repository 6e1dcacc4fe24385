package catalog

import (
	"context"

	"github.com/ManishKhulbe/tacticaledge-assignment/internal/models"
)

// MovieRepository is everything the catalog service needs from the
// store. FindOne filters by id AND owner in one shot so a foreign
// movie is indistinguishable from a missing one (shared.ErrNotFound
// either way).
type MovieRepository interface {
	FindOne(ctx context.Context, id, userID uint) (*models.Movie, error)
	// FindAndCount returns one page ordered createdAt DESC, id DESC,
	// plus the total matching row count ignoring pagination.
	FindAndCount(ctx context.Context, userID uint, offset, limit int) ([]models.Movie, int64, error)
	Save(ctx context.Context, m *models.Movie) error
	Delete(ctx context.Context, m *models.Movie) error
}
