package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/pkg/blob"
	"github.com/homesite/backend/internal/repository"
	"github.com/homesite/backend/internal/utils"
	"k8s.io/klog/v2"
)

// DocumentUploadRequest 文档上传表单
type DocumentUploadRequest struct {
	Filename    string
	Content     []byte
	ContentType string
	Title       string
	Description string
	Category    string
	Tags        []string
	Status      string
	IsPublic    bool
}

// DocumentUpdate 文档部分字段更新
type DocumentUpdate struct {
	Title          *string
	Description    *string
	Category       *string
	Tags           *[]string
	Status         *string
	IsPublic       *bool
	PinnedPriority *int
}

type DocumentService struct {
	docs  repository.DocumentRepository
	blobs blob.Store
}

func NewDocumentService(docs repository.DocumentRepository, blobs blob.Store) *DocumentService {
	return &DocumentService{docs: docs, blobs: blobs}
}

// DocumentTypeFromFilename 按扩展名归类文档类型
func DocumentTypeFromFilename(name string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")) {
	case "pdf":
		return "PDF"
	case "doc", "docx":
		return "DOCX"
	case "ppt":
		return "PPT"
	case "pptx":
		return "PPTX"
	case "xls", "xlsx":
		return "XLSX"
	case "txt":
		return "TXT"
	case "md", "markdown":
		return "MD"
	default:
		return "其他"
	}
}

// Upload 上传文档到对象存储并入库
func (s *DocumentService) Upload(ctx context.Context, req DocumentUploadRequest) (*model.Document, error) {
	key := fmt.Sprintf("documents/%s", path.Base(req.Filename))
	url, err := s.blobs.Put(ctx, key, req.Content, req.ContentType, false)
	if err != nil {
		return nil, fmt.Errorf("上传文档失败: %w", err)
	}

	doc := &model.Document{
		Title:         req.Title,
		Description:   req.Description,
		BlobURL:       url,
		FileSize:      int64(len(req.Content)),
		FormattedSize: utils.FormatFileSize(int64(len(req.Content))),
		Type:          DocumentTypeFromFilename(req.Filename),
		Category:      req.Category,
		Tags:          req.Tags,
		Status:        req.Status,
		IsPublic:      req.IsPublic,
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(path.Base(req.Filename), path.Ext(req.Filename))
	}
	if doc.Status == "" {
		doc.Status = "draft"
	}

	if err := s.docs.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// List 文档列表，游客只能看到公开且已发布的
func (s *DocumentService) List(q repository.DocumentListQuery, isAdmin bool) ([]model.Document, int64, error) {
	q.PublicOnly = !isAdmin
	return s.docs.List(q)
}

func (s *DocumentService) Get(id uint, isAdmin bool) (*model.Document, error) {
	doc, err := s.docs.Get(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && (!doc.IsPublic || doc.Status == "draft") {
		return nil, repository.ErrNotFound
	}
	return doc, nil
}

// Download 下载计数加一并返回文件地址
func (s *DocumentService) Download(id uint, isAdmin bool) (string, error) {
	doc, err := s.Get(id, isAdmin)
	if err != nil {
		return "", err
	}
	doc.DownloadCount++
	if err := s.docs.Save(doc); err != nil {
		klog.Errorf("更新文档下载量失败: %v", err)
	}
	return doc.BlobURL, nil
}

func (s *DocumentService) Update(id uint, upd DocumentUpdate) (*model.Document, error) {
	doc, err := s.docs.Get(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		doc.Title = *upd.Title
	}
	if upd.Description != nil {
		doc.Description = *upd.Description
	}
	if upd.Category != nil {
		doc.Category = *upd.Category
	}
	if upd.Tags != nil {
		doc.Tags = *upd.Tags
	}
	if upd.Status != nil {
		doc.Status = *upd.Status
	}
	if upd.IsPublic != nil {
		doc.IsPublic = *upd.IsPublic
	}
	if upd.PinnedPriority != nil {
		doc.PinnedPriority = *upd.PinnedPriority
	}

	if err := s.docs.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete 删除文档记录并清理对象存储
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.docs.Get(id)
	if err != nil {
		return err
	}
	if err := s.docs.Delete(id); err != nil {
		return err
	}
	if err := s.blobs.Remove(ctx, doc.BlobURL); err != nil {
		klog.Errorf("删除文档对象失败 %s: %v", doc.BlobURL, err)
	}
	return nil
}
