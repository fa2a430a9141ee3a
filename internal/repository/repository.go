package repository

import (
	"context"
	"errors"

	"singmeasong/internal/models"
)

var (
	ErrNotFound      = errors.New("recommendation not found")
	ErrDuplicateName = errors.New("recommendation name already exists")
)

// Repository is the query layer over the recommendations table.
// It carries no business rules; callers decide what a score means.
type Repository interface {
	// FindByID returns ErrNotFound when no record has the id.
	FindByID(ctx context.Context, id uint) (*models.Recommendation, error)
	// FindByName returns ErrNotFound when no record has the name.
	FindByName(ctx context.Context, name string) (*models.Recommendation, error)
	// Create inserts a record with score 0. ErrDuplicateName on a unique violation.
	Create(ctx context.Context, name, youtubeLink string) (*models.Recommendation, error)
	// UpdateScore adds delta to the score and returns the updated record.
	UpdateScore(ctx context.Context, id uint, delta int) (*models.Recommendation, error)
	// DownvoteAndPrune decrements the score and, in the same transaction,
	// deletes the record if the new score is below threshold.
	// The returned record is nil when deleted is true.
	DownvoteAndPrune(ctx context.Context, id uint, threshold int) (rec *models.Recommendation, deleted bool, err error)
	// Remove deletes a record by id.
	Remove(ctx context.Context, id uint) error
	// ListLatest returns up to limit records, most recently created first.
	ListLatest(ctx context.Context, limit int) ([]models.Recommendation, error)
	// ListTopByScore returns up to limit records by descending score, ties by creation order.
	ListTopByScore(ctx context.Context, limit int) ([]models.Recommendation, error)
	// ListAll returns every record in creation order.
	ListAll(ctx context.Context) ([]models.Recommendation, error)
	// Truncate removes every record.
	Truncate(ctx context.Context) error
}
