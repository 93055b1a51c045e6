package repository

import (
	"errors"
	"time"

	"github.com/homesite/backend/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	Create(user *model.User) error
	Get(id uint) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	Save(user *model.User) error
}

// BlogListQuery 博客列表查询条件
type BlogListQuery struct {
	Page     int
	PageSize int
	Statuses []string // 为空时不过滤状态
	Category string
	Tag      string
	Search   string // 标题/摘要/内容模糊匹配
}

type BlogRepository interface {
	Create(blog *model.Blog) error
	Get(id uint) (*model.Blog, error)
	List(q BlogListQuery) ([]model.Blog, int64, error)
	Categories(statuses []string) ([]string, error)
	Save(blog *model.Blog) error
	Delete(id uint) error
	Count(statuses []string) (int64, error)
	SearchCandidates(term string, statuses []string, limit int) ([]model.Blog, error)
	IncrementCommentCount(id uint, delta int) error
}

type BlogAssetRepository interface {
	FindByOwnerAndFilename(blogID uint, filename string) (*model.BlogAsset, error)
	Upsert(asset *model.BlogAsset) error
	ListByOwner(blogID uint) ([]model.BlogAsset, error)
}

type BlogLikeRepository interface {
	Exists(blogID, userID uint) (bool, error)
	Create(like *model.BlogLike) error
	Delete(blogID, userID uint) error
}

type CommentRepository interface {
	Create(comment *model.Comment) error
	Get(id uint) (*model.Comment, error)
	ListTopLevel(targetType string, targetID uint, publicOnly bool, viewerID uint, page, pageSize int) ([]model.Comment, int64, error)
	ListReplies(parentID uint, publicOnly bool, viewerID uint) ([]model.Comment, error)
	DeleteTree(id uint) (int64, error)
	Save(comment *model.Comment) error
	Count(targetType string) (int64, error)
}

type CommentLikeRepository interface {
	Exists(commentID, userID uint) (bool, error)
	Create(like *model.CommentLike) error
	Delete(commentID, userID uint) error
}

// GalleryListQuery 相册列表查询条件
type GalleryListQuery struct {
	Page       int
	PageSize   int
	Category   string
	Tag        string
	Search     string
	PublicOnly bool
}

type GalleryRepository interface {
	Create(image *model.Gallery) error
	Get(id uint) (*model.Gallery, error)
	List(q GalleryListQuery) ([]model.Gallery, int64, error)
	Categories() ([]string, error)
	Tags() ([]string, error)
	Save(image *model.Gallery) error
	Delete(id uint) error
	Count(statuses []string) (int64, error)
}

type FriendLinkRepository interface {
	Create(link *model.FriendLink) error
	Get(id uint) (*model.FriendLink, error)
	GetByURL(url string) (*model.FriendLink, error)
	List(activeOnly bool, category string, page, pageSize int) ([]model.FriendLink, int64, error)
	Save(link *model.FriendLink) error
	Delete(id uint) error
}

// DocumentListQuery 文档列表查询条件
type DocumentListQuery struct {
	Page       int
	PageSize   int
	Category   string
	Type       string
	PublicOnly bool
}

type DocumentRepository interface {
	Create(doc *model.Document) error
	Get(id uint) (*model.Document, error)
	List(q DocumentListQuery) ([]model.Document, int64, error)
	Save(doc *model.Document) error
	Delete(id uint) error
	Count(statuses []string) (int64, error)
	SearchCandidates(term string, publicOnly bool, limit int) ([]model.Document, error)
}

type VisitRepository interface {
	Create(visit *model.Visit) error
	CountSince(since time.Time) (int64, error)
	CountTotal() (int64, error)
}
