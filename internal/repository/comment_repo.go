package repository

import (
	"errors"

	"github.com/homesite/backend/internal/model"
	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) Get(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("Author").First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// visibilityScope 访客只看公开评论，登录用户额外可见自己的私有评论，管理员由调用方跳过过滤
func visibilityScope(tx *gorm.DB, publicOnly bool, viewerID uint) *gorm.DB {
	if !publicOnly {
		return tx
	}
	if viewerID > 0 {
		return tx.Where("is_public = ? OR author_id = ?", true, viewerID)
	}
	return tx.Where("is_public = ?", true)
}

func (r *commentRepository) ListTopLevel(targetType string, targetID uint, publicOnly bool, viewerID uint, page, pageSize int) ([]model.Comment, int64, error) {
	base := r.db.Model(&model.Comment{}).
		Where("target_type = ? AND target_id = ? AND parent_id IS NULL", targetType, targetID)
	base = visibilityScope(base, publicOnly, viewerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := base.Session(&gorm.Session{}).
		Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) ListReplies(parentID uint, publicOnly bool, viewerID uint) ([]model.Comment, error) {
	tx := r.db.Model(&model.Comment{}).Where("parent_id = ?", parentID)
	tx = visibilityScope(tx, publicOnly, viewerID)

	var replies []model.Comment
	err := tx.Preload("Author").Order("created_at ASC").Find(&replies).Error
	return replies, err
}

// DeleteTree 删除评论及其全部子孙，返回删除数量
func (r *commentRepository) DeleteTree(id uint) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		ids := []uint{id}
		for frontier := []uint{id}; len(frontier) > 0; {
			var children []uint
			if err := tx.Model(&model.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}
		result := tx.Delete(&model.Comment{}, ids)
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}

func (r *commentRepository) Save(comment *model.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) Count(targetType string) (int64, error) {
	var count int64
	tx := r.db.Model(&model.Comment{}).Where("is_public = ?", true)
	if targetType != "" {
		tx = tx.Where("target_type = ?", targetType)
	}
	err := tx.Count(&count).Error
	return count, err
}
