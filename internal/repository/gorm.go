package repository

import (
	"context"
	"errors"

	"singmeasong/internal/models"

	"gorm.io/gorm"
)

var _ Repository = (*GormRepository)(nil)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindByID(ctx context.Context, id uint) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *GormRepository) FindByName(ctx context.Context, name string) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *GormRepository) Create(ctx context.Context, name, youtubeLink string) (*models.Recommendation, error) {
	rec := models.Recommendation{
		Name:        name,
		YoutubeLink: youtubeLink,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *GormRepository) UpdateScore(ctx context.Context, id uint, delta int) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Recommendation{}).
			Where("id = ?", id).
			UpdateColumn("score", gorm.Expr("score + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.First(&rec, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

// DownvoteAndPrune runs decrement and conditional delete in one transaction.
// The UPDATE takes the row lock, so a concurrent downvote on the same id
// waits and then sees the decremented (or deleted) row.
func (r *GormRepository) DownvoteAndPrune(ctx context.Context, id uint, threshold int) (*models.Recommendation, bool, error) {
	var (
		rec     models.Recommendation
		deleted bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Recommendation{}).
			Where("id = ?", id).
			UpdateColumn("score", gorm.Expr("score - ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		res = tx.Where("id = ? AND score < ?", id, threshold).Delete(&models.Recommendation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			deleted = true
			return nil
		}

		return tx.First(&rec, id).Error
	})
	if err != nil {
		return nil, false, translate(err)
	}
	if deleted {
		return nil, true, nil
	}
	return &rec, false, nil
}

func (r *GormRepository) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Recommendation{}, id).Error
}

func (r *GormRepository) ListLatest(ctx context.Context, limit int) ([]models.Recommendation, error) {
	recs := make([]models.Recommendation, 0)
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&recs).Error
	return recs, err
}

func (r *GormRepository) ListTopByScore(ctx context.Context, limit int) ([]models.Recommendation, error) {
	recs := make([]models.Recommendation, 0)
	err := r.db.WithContext(ctx).Order("score DESC, id ASC").Limit(limit).Find(&recs).Error
	return recs, err
}

func (r *GormRepository) ListAll(ctx context.Context) ([]models.Recommendation, error) {
	recs := make([]models.Recommendation, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&recs).Error
	return recs, err
}

// Truncate empties the table. On PostgreSQL the id sequence restarts too.
func (r *GormRepository) Truncate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		return db.Exec("TRUNCATE TABLE recommendations RESTART IDENTITY").Error
	}
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Recommendation{}).Error
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateName
	default:
		return err
	}
}
