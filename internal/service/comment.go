package service

import (
	"errors"

	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
	"k8s.io/klog/v2"
)

// ErrInvalidTarget 评论目标类型不合法
var ErrInvalidTarget = errors.New("不支持的评论目标类型")

var commentTargetTypes = map[string]bool{
	"Blog":     true,
	"Gallery":  true,
	"Document": true,
	"General":  true,
}

// CommentCreateRequest 发表评论请求，parent_id 非空时为回复
type CommentCreateRequest struct {
	TargetID   uint   `json:"target_id"`
	TargetType string `json:"target_type" binding:"required"`
	Content    string `json:"content" binding:"required,max=2000"`
	ParentID   *uint  `json:"parent_id"`
	IsPublic   *bool  `json:"is_public"`
}

type CommentService struct {
	comments repository.CommentRepository
	likes    repository.CommentLikeRepository
	blogs    repository.BlogRepository
}

func NewCommentService(comments repository.CommentRepository, likes repository.CommentLikeRepository, blogs repository.BlogRepository) *CommentService {
	return &CommentService{comments: comments, likes: likes, blogs: blogs}
}

// Create 发表评论或回复。回复会继承父评论的目标，
// 博客评论同时累加博客的评论数。
func (s *CommentService) Create(authorID uint, req CommentCreateRequest) (*model.Comment, error) {
	if !commentTargetTypes[req.TargetType] {
		return nil, ErrInvalidTarget
	}

	comment := &model.Comment{
		TargetID:   req.TargetID,
		TargetType: req.TargetType,
		Content:    req.Content,
		AuthorID:   authorID,
		IsPublic:   true,
	}
	if req.IsPublic != nil {
		comment.IsPublic = *req.IsPublic
	}

	if req.ParentID != nil {
		parent, err := s.comments.Get(*req.ParentID)
		if err != nil {
			return nil, err
		}
		comment.ParentID = req.ParentID
		comment.TargetID = parent.TargetID
		comment.TargetType = parent.TargetType
	}

	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}

	if comment.TargetType == "Blog" {
		if err := s.blogs.IncrementCommentCount(comment.TargetID, 1); err != nil {
			klog.Errorf("更新博客评论数失败: %v", err)
		}
	}
	return s.comments.Get(comment.ID)
}

// List 目标下的评论分页列表，回复挂在顶层评论的 Replies 下。
// 非公开评论仅作者本人和管理员可见。
func (s *CommentService) List(targetType string, targetID uint, viewerID uint, viewerRole string, page, pageSize int) ([]model.Comment, int64, error) {
	publicOnly := viewerRole != "admin"
	comments, total, err := s.comments.ListTopLevel(targetType, targetID, publicOnly, viewerID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	for i := range comments {
		replies, err := s.comments.ListReplies(comments[i].ID, publicOnly, viewerID)
		if err != nil {
			return nil, 0, err
		}
		comments[i].Replies = replies
	}
	return comments, total, nil
}

// Delete 删除评论及其全部回复，作者或管理员可操作
func (s *CommentService) Delete(id, userID uint, role string) error {
	comment, err := s.comments.Get(id)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID && role != "admin" {
		return ErrForbidden
	}

	removed, err := s.comments.DeleteTree(id)
	if err != nil {
		return err
	}

	if comment.TargetType == "Blog" {
		if err := s.blogs.IncrementCommentCount(comment.TargetID, -int(removed)); err != nil {
			klog.Errorf("更新博客评论数失败: %v", err)
		}
	}
	return nil
}

// ToggleLike 评论点赞/取消点赞
func (s *CommentService) ToggleLike(commentID, userID uint) (liked bool, likeCount int, err error) {
	comment, err := s.comments.Get(commentID)
	if err != nil {
		return false, 0, err
	}

	exists, err := s.likes.Exists(commentID, userID)
	if err != nil {
		return false, 0, err
	}

	if exists {
		if err := s.likes.Delete(commentID, userID); err != nil {
			return false, 0, err
		}
		comment.LikeCount--
		if comment.LikeCount < 0 {
			comment.LikeCount = 0
		}
	} else {
		if err := s.likes.Create(&model.CommentLike{CommentID: commentID, UserID: userID}); err != nil {
			return false, 0, err
		}
		comment.LikeCount++
		liked = true
	}

	if err := s.comments.Save(comment); err != nil {
		return false, 0, err
	}
	return liked, comment.LikeCount, nil
}
