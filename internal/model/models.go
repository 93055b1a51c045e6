package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList 以 JSON 形式存储的字符串数组（标签等）
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:20;not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	Avatar    string    `json:"avatar" gorm:"size:500;default:default-avatar.png"`
	Role      string    `json:"role" gorm:"size:20;default:user"` // user, admin
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Blog struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Title          string     `json:"title" gorm:"size:255;not null"`
	Excerpt        string     `json:"excerpt" gorm:"size:500"`
	Category       string     `json:"category" gorm:"size:100;index"`
	Content        string     `json:"content" gorm:"type:text"`
	AuthorID       uint       `json:"author_id" gorm:"index;not null"`
	Tags           StringList `json:"tags" gorm:"type:text"`
	CoverImage     string     `json:"cover_image" gorm:"size:500"`
	Status         string     `json:"status" gorm:"size:20;index;default:draft"` // draft, published, pinned
	ViewCount      int        `json:"view_count" gorm:"default:0"`
	LikeCount      int        `json:"like_count" gorm:"default:0"`
	CommentCount   int        `json:"comment_count" gorm:"default:0"`
	PinnedPriority int        `json:"pinned_priority" gorm:"index;default:0"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BlogAsset 博客图片资源映射：(BlogID, Filename) 唯一，指向 Blob 存储地址
type BlogAsset struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlogID    uint      `json:"blog_id" gorm:"not null;uniqueIndex:idx_blog_filename"`
	Filename  string    `json:"filename" gorm:"size:255;not null;uniqueIndex:idx_blog_filename"`
	Title     string    `json:"title" gorm:"size:255"`
	BlobURL   string    `json:"blob_url" gorm:"size:1000;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BlogLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlogID    uint      `json:"blog_id" gorm:"not null;uniqueIndex:idx_blog_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_blog_user"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TargetID   uint      `json:"target_id" gorm:"index:idx_target;not null"`
	TargetType string    `json:"target_type" gorm:"size:20;index:idx_target;not null"` // Blog, Gallery, Document, General
	Content    string    `json:"content" gorm:"size:2000;not null"`
	AuthorID   uint      `json:"author_id" gorm:"index;not null"`
	ParentID   *uint     `json:"parent_id" gorm:"index"`
	// 默认值由 service 层填充：带 default 标签的 bool 零值会在 Create 时被 gorm 丢弃
	IsPublic bool `json:"is_public"`
	LikeCount  int       `json:"like_count" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Author  *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Replies []Comment `json:"replies,omitempty" gorm:"-"`
}

type CommentLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"not null;uniqueIndex:idx_comment_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_comment_user"`
	CreatedAt time.Time `json:"created_at"`
}

// GalleryExif 相册图片的拍摄参数
type GalleryExif struct {
	Camera       string `json:"camera" gorm:"size:100"`
	Lens         string `json:"lens" gorm:"size:100"`
	Aperture     string `json:"aperture" gorm:"size:20"`
	ShutterSpeed string `json:"shutter_speed" gorm:"size:20"`
	ISO          string `json:"iso" gorm:"size:20"`
	FocalLength  string `json:"focal_length" gorm:"size:20"`
	Location     string `json:"location" gorm:"size:200"`
}

type Gallery struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Title       string      `json:"title" gorm:"size:100;not null"`
	Description string      `json:"description" gorm:"size:500"`
	Thumbnail   string      `json:"thumbnail" gorm:"size:1000;not null"`
	FullSize    string      `json:"full_size" gorm:"size:1000;not null"`
	Category    string      `json:"category" gorm:"size:50;index"`
	Tags        StringList  `json:"tags" gorm:"type:text"`
	Status      string      `json:"status" gorm:"size:20;default:draft"` // draft, published
	Date        time.Time   `json:"date" gorm:"index"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Author      string      `json:"author" gorm:"size:50;default:Admin"`
	ViewCount   int         `json:"view_count" gorm:"default:0"`
	IsPublic    bool        `json:"is_public"`
	Exif        GalleryExif `json:"exif" gorm:"embedded;embeddedPrefix:exif_"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type FriendLink struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:50;not null"`
	URL         string    `json:"url" gorm:"size:500;not null;uniqueIndex"`
	Avatar      string    `json:"avatar" gorm:"size:500"`
	Description string    `json:"description" gorm:"size:200"`
	Category    string    `json:"category" gorm:"size:50;index"`
	Email       string    `json:"email" gorm:"size:255"`
	Status      string    `json:"status" gorm:"size:20;default:pending"` // pending, approved, invalid
	IsActive    bool      `json:"is_active" gorm:"index;default:false"`
	VisitCount  int       `json:"visit_count" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Document struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Title          string     `json:"title" gorm:"size:200;not null"`
	Description    string     `json:"description" gorm:"size:1000"`
	BlobURL        string     `json:"blob_url" gorm:"size:1000;not null"`
	FileSize       int64      `json:"file_size"`
	FormattedSize  string     `json:"formatted_size" gorm:"size:20"`
	Type           string     `json:"type" gorm:"size:20;index"` // PDF, DOCX, PPT, PPTX, XLSX, TXT, MD, 其他
	Category       string     `json:"category" gorm:"size:50;index"`
	Tags           StringList `json:"tags" gorm:"type:text"`
	DownloadCount  int        `json:"download_count" gorm:"default:0"`
	Author         string     `json:"author" gorm:"size:50;default:Admin"`
	IsPublic       bool       `json:"is_public"`
	Status         string     `json:"status" gorm:"size:20;index;default:draft"` // draft, published, pinned
	PinnedPriority int        `json:"pinned_priority" gorm:"default:0"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Visit 页面访问记录，由访问统计中间件异步写入
type Visit struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Page      string    `json:"page" gorm:"size:500;index:idx_page_time;not null"`
	UserAgent string    `json:"user_agent" gorm:"size:500"`
	IP        string    `json:"ip" gorm:"size:64"`
	SessionID string    `json:"session_id" gorm:"size:64"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_page_time"`
}
