package service

import (
	"errors"

	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
	"k8s.io/klog/v2"
)

// ErrForbidden 无权操作目标资源
var ErrForbidden = errors.New("无权操作")

// BlogUpdate 博客部分字段更新，nil 表示保持原值
type BlogUpdate struct {
	Title          *string
	Excerpt        *string
	Category       *string
	Content        *string
	Tags           *[]string
	CoverImage     *string
	Status         *string
	PinnedPriority *int
}

type BlogService struct {
	blogs repository.BlogRepository
	likes repository.BlogLikeRepository
}

func NewBlogService(blogs repository.BlogRepository, likes repository.BlogLikeRepository) *BlogService {
	return &BlogService{blogs: blogs, likes: likes}
}

// publicStatuses 游客可见的博客状态
func publicStatuses() []string { return []string{"published", "pinned"} }

// List 公开博客列表，置顶优先
func (s *BlogService) List(q repository.BlogListQuery) ([]model.Blog, int64, error) {
	if len(q.Statuses) == 0 {
		q.Statuses = publicStatuses()
	}
	return s.blogs.List(q)
}

// ListAll 管理端列表，不过滤状态
func (s *BlogService) ListAll(q repository.BlogListQuery) ([]model.Blog, int64, error) {
	return s.blogs.List(q)
}

// Get 博客详情并累加浏览量。草稿仅作者和管理员可见。
func (s *BlogService) Get(id, viewerID uint, viewerRole string) (*model.Blog, error) {
	blog, err := s.blogs.Get(id)
	if err != nil {
		return nil, err
	}
	if blog.Status == "draft" && blog.AuthorID != viewerID && viewerRole != "admin" {
		return nil, repository.ErrNotFound
	}

	blog.ViewCount++
	if err := s.blogs.Save(blog); err != nil {
		klog.Errorf("更新博客浏览量失败: %v", err)
	}
	return blog, nil
}

func (s *BlogService) Create(blog *model.Blog) error {
	if blog.Status == "" {
		blog.Status = "draft"
	}
	return s.blogs.Create(blog)
}

// Update 部分更新，作者或管理员可操作
func (s *BlogService) Update(id, userID uint, role string, upd BlogUpdate) (*model.Blog, error) {
	blog, err := s.blogs.Get(id)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != userID && role != "admin" {
		return nil, ErrForbidden
	}

	if upd.Title != nil {
		blog.Title = *upd.Title
	}
	if upd.Excerpt != nil {
		blog.Excerpt = *upd.Excerpt
	}
	if upd.Category != nil {
		blog.Category = *upd.Category
	}
	if upd.Content != nil {
		blog.Content = *upd.Content
	}
	if upd.Tags != nil {
		blog.Tags = *upd.Tags
	}
	if upd.CoverImage != nil {
		blog.CoverImage = *upd.CoverImage
	}
	if upd.Status != nil {
		blog.Status = *upd.Status
	}
	if upd.PinnedPriority != nil {
		blog.PinnedPriority = *upd.PinnedPriority
	}

	if err := s.blogs.Save(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) Delete(id, userID uint, role string) error {
	blog, err := s.blogs.Get(id)
	if err != nil {
		return err
	}
	if blog.AuthorID != userID && role != "admin" {
		return ErrForbidden
	}
	return s.blogs.Delete(id)
}

// ToggleLike 点赞/取消点赞，返回最新状态和点赞数
func (s *BlogService) ToggleLike(blogID, userID uint) (liked bool, likeCount int, err error) {
	blog, err := s.blogs.Get(blogID)
	if err != nil {
		return false, 0, err
	}

	exists, err := s.likes.Exists(blogID, userID)
	if err != nil {
		return false, 0, err
	}

	if exists {
		if err := s.likes.Delete(blogID, userID); err != nil {
			return false, 0, err
		}
		blog.LikeCount--
		if blog.LikeCount < 0 {
			blog.LikeCount = 0
		}
		liked = false
	} else {
		if err := s.likes.Create(&model.BlogLike{BlogID: blogID, UserID: userID}); err != nil {
			return false, 0, err
		}
		blog.LikeCount++
		liked = true
	}

	if err := s.blogs.Save(blog); err != nil {
		return false, 0, err
	}
	return liked, blog.LikeCount, nil
}

// Categories 公开博客的分类列表
func (s *BlogService) Categories() ([]string, error) {
	return s.blogs.Categories(publicStatuses())
}
