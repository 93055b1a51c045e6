package repository

import (
	"github.com/homesite/backend/internal/model"
	"gorm.io/gorm"
)

type blogLikeRepository struct {
	db *gorm.DB
}

func NewBlogLikeRepository(db *gorm.DB) BlogLikeRepository {
	return &blogLikeRepository{db: db}
}

func (r *blogLikeRepository) Exists(blogID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.BlogLike{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *blogLikeRepository) Create(like *model.BlogLike) error {
	return r.db.Create(like).Error
}

func (r *blogLikeRepository) Delete(blogID, userID uint) error {
	return r.db.Where("blog_id = ? AND user_id = ?", blogID, userID).
		Delete(&model.BlogLike{}).Error
}

type commentLikeRepository struct {
	db *gorm.DB
}

func NewCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &commentLikeRepository{db: db}
}

func (r *commentLikeRepository) Exists(commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *commentLikeRepository) Create(like *model.CommentLike) error {
	return r.db.Create(like).Error
}

func (r *commentLikeRepository) Delete(commentID, userID uint) error {
	return r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&model.CommentLike{}).Error
}
