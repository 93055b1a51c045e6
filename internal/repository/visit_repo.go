package repository

import (
	"time"

	"github.com/homesite/backend/internal/model"
	"gorm.io/gorm"
)

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(visit *model.Visit) error {
	return r.db.Create(visit).Error
}

func (r *visitRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Visit{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *visitRepository) CountTotal() (int64, error) {
	var count int64
	err := r.db.Model(&model.Visit{}).Count(&count).Error
	return count, err
}
