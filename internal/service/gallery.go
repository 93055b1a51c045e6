package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"time"

	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/pkg/blob"
	"github.com/homesite/backend/internal/repository"
	"k8s.io/klog/v2"

	_ "golang.org/x/image/webp"
)

// GalleryUploadRequest 相册图片上传表单
type GalleryUploadRequest struct {
	Filename    string
	Content     []byte
	ContentType string
	Title       string
	Description string
	Category    string
	Tags        []string
	Status      string
	Date        time.Time
	IsPublic    bool
	Exif        model.GalleryExif
}

// GalleryUpdate 相册图片部分字段更新
type GalleryUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Tags        *[]string
	Status      *string
	IsPublic    *bool
	Exif        *model.GalleryExif
}

type GalleryService struct {
	gallery repository.GalleryRepository
	blobs   blob.Store
}

func NewGalleryService(gallery repository.GalleryRepository, blobs blob.Store) *GalleryService {
	return &GalleryService{gallery: gallery, blobs: blobs}
}

// Upload 上传相册图片。图片内容进对象存储，像素尺寸在上传时解析入库，
// 列表页无需再拉取原图。
func (s *GalleryService) Upload(ctx context.Context, req GalleryUploadRequest) (*model.Gallery, error) {
	width, height := 0, 0
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(req.Content)); err == nil {
		width, height = cfg.Width, cfg.Height
	} else {
		klog.V(6).Infof("解析图片尺寸失败 %s: %v", req.Filename, err)
	}

	key := fmt.Sprintf("gallery/%s", path.Base(req.Filename))
	url, err := s.blobs.Put(ctx, key, req.Content, req.ContentType, false)
	if err != nil {
		return nil, fmt.Errorf("上传图片失败: %w", err)
	}

	img := &model.Gallery{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   url,
		FullSize:    url,
		Category:    req.Category,
		Tags:        req.Tags,
		Status:      req.Status,
		Date:        req.Date,
		Width:       width,
		Height:      height,
		IsPublic:    req.IsPublic,
		Exif:        req.Exif,
	}
	if img.Title == "" {
		img.Title = path.Base(req.Filename)
	}
	if img.Status == "" {
		img.Status = "draft"
	}
	if img.Date.IsZero() {
		img.Date = time.Now()
	}

	if err := s.gallery.Create(img); err != nil {
		return nil, err
	}
	return img, nil
}

// List 相册列表，游客只能看到公开且已发布的图片
func (s *GalleryService) List(q repository.GalleryListQuery, isAdmin bool) ([]model.Gallery, int64, error) {
	q.PublicOnly = !isAdmin
	return s.gallery.List(q)
}

// Get 图片详情并累加浏览量
func (s *GalleryService) Get(id uint, isAdmin bool) (*model.Gallery, error) {
	img, err := s.gallery.Get(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && (!img.IsPublic || img.Status != "published") {
		return nil, repository.ErrNotFound
	}

	img.ViewCount++
	if err := s.gallery.Save(img); err != nil {
		klog.Errorf("更新图片浏览量失败: %v", err)
	}
	return img, nil
}

func (s *GalleryService) Update(id uint, upd GalleryUpdate) (*model.Gallery, error) {
	img, err := s.gallery.Get(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		img.Title = *upd.Title
	}
	if upd.Description != nil {
		img.Description = *upd.Description
	}
	if upd.Category != nil {
		img.Category = *upd.Category
	}
	if upd.Tags != nil {
		img.Tags = *upd.Tags
	}
	if upd.Status != nil {
		img.Status = *upd.Status
	}
	if upd.IsPublic != nil {
		img.IsPublic = *upd.IsPublic
	}
	if upd.Exif != nil {
		img.Exif = *upd.Exif
	}

	if err := s.gallery.Save(img); err != nil {
		return nil, err
	}
	return img, nil
}

// Delete 删除图片记录并清理对象存储
func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	img, err := s.gallery.Get(id)
	if err != nil {
		return err
	}
	if err := s.gallery.Delete(id); err != nil {
		return err
	}

	if err := s.blobs.Remove(ctx, img.FullSize); err != nil {
		klog.Errorf("删除图片对象失败 %s: %v", img.FullSize, err)
	}
	if img.Thumbnail != img.FullSize {
		if err := s.blobs.Remove(ctx, img.Thumbnail); err != nil {
			klog.Errorf("删除缩略图对象失败 %s: %v", img.Thumbnail, err)
		}
	}
	return nil
}

// Categories 相册分类列表
func (s *GalleryService) Categories() ([]string, error) {
	return s.gallery.Categories()
}

// Tags 相册标签列表
func (s *GalleryService) Tags() ([]string, error) {
	return s.gallery.Tags()
}
