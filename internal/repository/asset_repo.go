package repository

import (
	"errors"
	"time"

	"github.com/homesite/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blogAssetRepository struct {
	db *gorm.DB
}

func NewBlogAssetRepository(db *gorm.DB) BlogAssetRepository {
	return &blogAssetRepository{db: db}
}

func (r *blogAssetRepository) FindByOwnerAndFilename(blogID uint, filename string) (*model.BlogAsset, error) {
	var asset model.BlogAsset
	err := r.db.Where("blog_id = ? AND filename = ?", blogID, filename).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// Upsert 以 (blog_id, filename) 为键原子写入，已存在时更新 title 与 blob_url
func (r *blogAssetRepository) Upsert(asset *model.BlogAsset) error {
	asset.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blog_id"}, {Name: "filename"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "blob_url", "updated_at"}),
	}).Create(asset).Error
}

func (r *blogAssetRepository) ListByOwner(blogID uint) ([]model.BlogAsset, error) {
	var assets []model.BlogAsset
	err := r.db.Where("blog_id = ?", blogID).Order("filename").Find(&assets).Error
	return assets, err
}
