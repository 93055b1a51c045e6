package mdimport

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
	"k8s.io/klog/v2"
)

// ErrForbidden 无权编辑目标博客
var ErrForbidden = errors.New("no permission to edit this blog")

const (
	defaultTitle    = "未命名标题"
	defaultExcerpt  = "（无摘要）"
	defaultCategory = "未分类"
	excerptLimit    = 200
)

// frontMatter 导入的 Markdown 头部可携带的元数据，
// 仅在表单字段缺省时作为创建模式的默认值
type frontMatter struct {
	Title    string   `yaml:"title"`
	Excerpt  string   `yaml:"excerpt"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
}

// ImportRequest 一次 Markdown 导入请求
type ImportRequest struct {
	Files    []UploadedFile
	Title    string
	Excerpt  string
	Category string
	Tags     []string
	Status   string
	BlogID   uint // 0 表示创建新博客
	UserID   uint
	Role     string
}

type ImportResult struct {
	Blog     *model.Blog
	Warnings []string
}

// Service Markdown 导入编排：解包 -> 建档/鉴权 -> 重写 -> 落库
type Service struct {
	blogs    repository.BlogRepository
	rewriter *Rewriter
}

func NewService(blogs repository.BlogRepository, publisher Publisher) *Service {
	return &Service{
		blogs:    blogs,
		rewriter: NewRewriter(publisher),
	}
}

// Import 创建模式先建档拿到博客 ID 再重写；编辑模式先鉴权（作者或管理员），
// 未授权直接失败且不做任何变更。两条路径最终都保存重写后的正文。
// 单个资源的失败只产生告警，不中断整次导入。
func (s *Service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	content, pool, err := BuildAssetPool(req.Files)
	if err != nil {
		return nil, err
	}

	meta, body := parseFrontMatter(content)

	var blog *model.Blog
	if req.BlogID > 0 {
		blog, err = s.blogs.Get(req.BlogID)
		if err != nil {
			return nil, err
		}
		if blog.AuthorID != req.UserID && req.Role != "admin" {
			return nil, ErrForbidden
		}
		applyOverrides(blog, req)
		blog.Content = body
	} else {
		blog = newBlogFromImport(req, meta, body)
		if err := s.blogs.Create(blog); err != nil {
			return nil, err
		}
	}

	rewritten, warnings := s.rewriter.Rewrite(ctx, blog.ID, body, pool)
	blog.Content = rewritten
	blog.UpdatedAt = time.Now()
	if err := s.blogs.Save(blog); err != nil {
		return nil, err
	}

	klog.V(6).Infof("Markdown 导入完成: blog=%d warnings=%d", blog.ID, len(warnings))
	return &ImportResult{Blog: blog, Warnings: warnings}, nil
}

// parseFrontMatter 解析 YAML front matter；解析失败时按无元数据处理
func parseFrontMatter(content string) (frontMatter, string) {
	var meta frontMatter
	rest, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return frontMatter{}, content
	}
	return meta, string(rest)
}

// newBlogFromImport 创建模式的字段优先级：表单 > front matter > 默认值
func newBlogFromImport(req ImportRequest, meta frontMatter, body string) *model.Blog {
	title := firstNonEmpty(req.Title, meta.Title, defaultTitle)
	excerpt := firstNonEmpty(req.Excerpt, meta.Excerpt)
	if excerpt == "" {
		excerpt = firstNonEmpty(PlainExcerpt([]byte(body), excerptLimit), defaultExcerpt)
	}
	category := firstNonEmpty(req.Category, meta.Category, defaultCategory)
	status := firstNonEmpty(req.Status, "draft")

	tags := req.Tags
	if len(tags) == 0 {
		tags = meta.Tags
	}

	return &model.Blog{
		Title:    title,
		Excerpt:  excerpt,
		Category: category,
		Content:  body,
		Tags:     tags,
		Status:   status,
		AuthorID: req.UserID,
	}
}

// applyOverrides 编辑模式只覆盖请求里显式给出的字段
func applyOverrides(blog *model.Blog, req ImportRequest) {
	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Excerpt != "" {
		blog.Excerpt = req.Excerpt
	}
	if req.Category != "" {
		blog.Category = req.Category
	}
	if len(req.Tags) > 0 {
		blog.Tags = req.Tags
	}
	if req.Status != "" {
		blog.Status = req.Status
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
