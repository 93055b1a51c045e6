package repository

import (
	"errors"

	"github.com/homesite/backend/internal/model"
	"gorm.io/gorm"
)

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(blog *model.Blog) error {
	return r.db.Create(blog).Error
}

func (r *blogRepository) Get(id uint) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.First(&blog, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) buildListQuery(q BlogListQuery) *gorm.DB {
	tx := r.db.Model(&model.Blog{})
	if len(q.Statuses) > 0 {
		tx = tx.Where("status IN ?", q.Statuses)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Tag != "" {
		// 标签以 JSON 数组存储，按带引号的字面值匹配
		tx = tx.Where("tags LIKE ?", "%\""+q.Tag+"\"%")
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("title LIKE ? OR excerpt LIKE ? OR content LIKE ?", like, like, like)
	}
	return tx
}

// List 分页查询：置顶优先，其余按创建时间倒序
func (r *blogRepository) List(q BlogListQuery) ([]model.Blog, int64, error) {
	var total int64
	if err := r.buildListQuery(q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []model.Blog
	err := r.buildListQuery(q).
		Order("pinned_priority DESC, created_at DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *blogRepository) Categories(statuses []string) ([]string, error) {
	var categories []string
	tx := r.db.Model(&model.Blog{}).Distinct("category")
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}
	err := tx.Order("category").Pluck("category", &categories).Error
	return categories, err
}

func (r *blogRepository) Save(blog *model.Blog) error {
	return r.db.Save(blog).Error
}

func (r *blogRepository) Delete(id uint) error {
	return r.db.Delete(&model.Blog{}, id).Error
}

func (r *blogRepository) Count(statuses []string) (int64, error) {
	var count int64
	tx := r.db.Model(&model.Blog{})
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}
	err := tx.Count(&count).Error
	return count, err
}

// SearchCandidates 模糊搜索候选集，相关性打分在 search 服务内完成
func (r *blogRepository) SearchCandidates(term string, statuses []string, limit int) ([]model.Blog, error) {
	like := "%" + term + "%"
	tx := r.db.Model(&model.Blog{}).
		Where("title LIKE ? OR content LIKE ? OR excerpt LIKE ? OR category LIKE ? OR tags LIKE ?",
			like, like, like, like, like)
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}
	var blogs []model.Blog
	err := tx.Order("created_at DESC").Limit(limit).Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) IncrementCommentCount(id uint, delta int) error {
	return r.db.Model(&model.Blog{}).
		Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", delta)).Error
}
