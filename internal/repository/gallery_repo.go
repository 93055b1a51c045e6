package repository

import (
	"errors"

	"github.com/homesite/backend/internal/model"
	"gorm.io/gorm"
)

type galleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(image *model.Gallery) error {
	return r.db.Create(image).Error
}

func (r *galleryRepository) Get(id uint) (*model.Gallery, error) {
	var image model.Gallery
	err := r.db.First(&image, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *galleryRepository) buildListQuery(q GalleryListQuery) *gorm.DB {
	tx := r.db.Model(&model.Gallery{})
	if q.PublicOnly {
		tx = tx.Where("is_public = ? AND status = ?", true, "published")
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Tag != "" {
		tx = tx.Where("tags LIKE ?", "%\""+q.Tag+"\"%")
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	return tx
}

func (r *galleryRepository) List(q GalleryListQuery) ([]model.Gallery, int64, error) {
	var total int64
	if err := r.buildListQuery(q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var images []model.Gallery
	err := r.buildListQuery(q).
		Order("date DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&images).Error
	if err != nil {
		return nil, 0, err
	}
	return images, total, nil
}

func (r *galleryRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Gallery{}).
		Where("is_public = ? AND status = ?", true, "published").
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

// Tags 汇总公开已发布图片的标签并去重
func (r *galleryRepository) Tags() ([]string, error) {
	var lists []model.StringList
	err := r.db.Model(&model.Gallery{}).
		Where("is_public = ? AND status = ?", true, "published").
		Pluck("tags", &lists).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var tags []string
	for _, list := range lists {
		for _, tag := range list {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}

func (r *galleryRepository) Save(image *model.Gallery) error {
	return r.db.Save(image).Error
}

func (r *galleryRepository) Delete(id uint) error {
	return r.db.Delete(&model.Gallery{}, id).Error
}

func (r *galleryRepository) Count(statuses []string) (int64, error) {
	var count int64
	tx := r.db.Model(&model.Gallery{})
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}
	err := tx.Count(&count).Error
	return count, err
}
