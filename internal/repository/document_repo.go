package repository

import (
	"errors"

	"github.com/homesite/backend/internal/model"
	"gorm.io/gorm"
)

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *model.Document) error {
	return r.db.Create(doc).Error
}

func (r *documentRepository) Get(id uint) (*model.Document, error) {
	var doc model.Document
	err := r.db.First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) buildListQuery(q DocumentListQuery) *gorm.DB {
	tx := r.db.Model(&model.Document{})
	if q.PublicOnly {
		tx = tx.Where("is_public = ? AND status IN ?", true, []string{"published", "pinned"})
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Type != "" {
		tx = tx.Where("type = ?", q.Type)
	}
	return tx
}

func (r *documentRepository) List(q DocumentListQuery) ([]model.Document, int64, error) {
	var total int64
	if err := r.buildListQuery(q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []model.Document
	err := r.buildListQuery(q).
		Order("pinned_priority DESC, created_at DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&docs).Error
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *documentRepository) Save(doc *model.Document) error {
	return r.db.Save(doc).Error
}

func (r *documentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Document{}, id).Error
}

func (r *documentRepository) Count(statuses []string) (int64, error) {
	var count int64
	tx := r.db.Model(&model.Document{})
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}
	err := tx.Count(&count).Error
	return count, err
}

func (r *documentRepository) SearchCandidates(term string, publicOnly bool, limit int) ([]model.Document, error) {
	like := "%" + term + "%"
	tx := r.db.Model(&model.Document{}).
		Where("title LIKE ? OR description LIKE ? OR category LIKE ? OR tags LIKE ?",
			like, like, like, like)
	if publicOnly {
		tx = tx.Where("is_public = ? AND status IN ?", true, []string{"published", "pinned"})
	}
	var docs []model.Document
	err := tx.Order("created_at DESC").Limit(limit).Find(&docs).Error
	return docs, err
}
