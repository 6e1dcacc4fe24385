package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/ManishKhulbe/tacticaledge-assignment/internal/models"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/shared"
)

const (
	DefaultPageSize = 8
	MinYear         = 1800
)

type CreateInput struct {
	Title          string
	PublishingYear int
	Poster         *string
}

// UpdateInput is a partial patch; nil fields are left untouched.
type UpdateInput struct {
	Title          *string
	PublishingYear *int
	Poster         *string
}

type Page struct {
	Movies     []models.Movie `json:"movies"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"totalPages"`
}

// Service implements owner-scoped CRUD and paginated listing over
// movies. The owner id always comes from the authenticated caller,
// never from client input.
type Service struct {
	movies MovieRepository
}

func NewService(movies MovieRepository) *Service {
	return &Service{movies: movies}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &shared.ValidationError{Field: "title", Message: "title must not be empty"}
	}
	return nil
}

func validateYear(year int) error {
	if year < MinYear || year > time.Now().Year() {
		return &shared.ValidationError{Field: "publishingYear", Message: "publishingYear must be between 1800 and the current year"}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, ownerID uint, in CreateInput) (*models.Movie, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateYear(in.PublishingYear); err != nil {
		return nil, err
	}

	m := &models.Movie{
		Title:          strings.TrimSpace(in.Title),
		PublishingYear: in.PublishingYear,
		Poster:         in.Poster,
		UserID:         ownerID,
	}
	if err := s.movies.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns one page of the owner's movies, newest first. Out of
// range input degrades instead of failing: page < 1 clamps to 1,
// limit < 1 clamps to the default, and a page past the end comes back
// empty with the correct total and totalPages.
func (s *Service) List(ctx context.Context, ownerID uint, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	movies, total, err := s.movies.FindAndCount(ctx, ownerID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Page{Movies: movies, Total: total, TotalPages: totalPages}, nil
}

func (s *Service) Get(ctx context.Context, id, ownerID uint) (*models.Movie, error) {
	return s.movies.FindOne(ctx, id, ownerID)
}

// Update merges the patch onto the existing record. The Get call is
// the ownership gate; it fails identically for foreign and missing
// rows.
func (s *Service) Update(ctx context.Context, id, ownerID uint, in UpdateInput) (*models.Movie, error) {
	m, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.PublishingYear != nil {
		if err := validateYear(*in.PublishingYear); err != nil {
			return nil, err
		}
		m.PublishingYear = *in.PublishingYear
	}
	if in.Poster != nil {
		m.Poster = in.Poster
	}

	if err := s.movies.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete hard-deletes the row. The hosted poster image is left behind
// on purpose.
func (s *Service) Delete(ctx context.Context, id, ownerID uint) error {
	m, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return err
	}
	return s.movies.Delete(ctx, m)
}
