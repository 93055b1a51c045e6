package repository

import (
	"errors"

	"github.com/homesite/backend/internal/model"
	"gorm.io/gorm"
)

type friendLinkRepository struct {
	db *gorm.DB
}

func NewFriendLinkRepository(db *gorm.DB) FriendLinkRepository {
	return &friendLinkRepository{db: db}
}

func (r *friendLinkRepository) Create(link *model.FriendLink) error {
	return r.db.Create(link).Error
}

func (r *friendLinkRepository) Get(id uint) (*model.FriendLink, error) {
	var link model.FriendLink
	err := r.db.First(&link, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *friendLinkRepository) GetByURL(url string) (*model.FriendLink, error) {
	var link model.FriendLink
	err := r.db.Where("url = ?", url).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *friendLinkRepository) List(activeOnly bool, category string, page, pageSize int) ([]model.FriendLink, int64, error) {
	tx := r.db.Model(&model.FriendLink{})
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	if category != "" {
		tx = tx.Where("category = ?", category)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var links []model.FriendLink
	err := tx.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&links).Error
	if err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

func (r *friendLinkRepository) Save(link *model.FriendLink) error {
	return r.db.Save(link).Error
}

func (r *friendLinkRepository) Delete(id uint) error {
	return r.db.Delete(&model.FriendLink{}, id).Error
}
