package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/homesite/backend/internal/middleware"
	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
	"github.com/homesite/backend/internal/service/mdimport"
	"gorm.io/gorm"
)

type stubBlobStore struct {
	objects map[string][]byte
}

func (s *stubBlobStore) Put(_ context.Context, key string, content []byte, _ string, _ bool) (string, error) {
	s.objects[key] = content
	return "http://blob/" + key, nil
}

func (s *stubBlobStore) Remove(_ context.Context, _ string) error { return nil }

func newImportRouter(t *testing.T, userID uint, role string) (*gin.Engine, repository.BlogRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.Blog{}, &model.BlogAsset{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}

	blogs := repository.NewBlogRepository(db)
	assets := repository.NewBlogAssetRepository(db)
	publisher := mdimport.NewAssetPublisher(assets, &stubBlobStore{objects: map[string][]byte{}})
	h := NewBlogImportHandler(mdimport.NewService(blogs, publisher))

	r := gin.New()
	r.POST("/api/blogs/import", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRole, role)
	}, h.Import)
	return r, blogs
}

func multipartImport(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field error: %v", err)
		}
	}
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file error: %v", err)
		}
		part.Write(content)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

type importResponse struct {
	Blog     model.Blog `json:"blog"`
	Warnings []string   `json:"warnings"`
	Error    string     `json:"error"`
}

func TestImportEndpointCreatesBlog(t *testing.T) {
	r, _ := newImportRouter(t, 1, "admin")

	body, contentType := multipartImport(t,
		map[string]string{"title": "测试文章", "status": "published"},
		map[string][]byte{
			"post.md":   []byte("![cover](images/cover.png) and ![bad](missing.png)"),
			"cover.png": []byte("png-bytes"),
		},
	)
	req := httptest.NewRequest("POST", "/api/blogs/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp importResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Blog.Title != "测试文章" {
		t.Fatalf("unexpected title: %s", resp.Blog.Title)
	}
	want := fmt.Sprintf("![cover](/api/blog/%d/cover.png) and ![bad](missing.png)", resp.Blog.ID)
	if resp.Blog.Content != want {
		t.Fatalf("content mismatch:\n got:  %s\n want: %s", resp.Blog.Content, want)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0] != "asset not found: missing.png" {
		t.Fatalf("unexpected warnings: %v", resp.Warnings)
	}
}

func TestImportEndpointMissingMarkdown(t *testing.T) {
	r, _ := newImportRouter(t, 1, "admin")

	body, contentType := multipartImport(t, nil, map[string][]byte{"cover.png": []byte("png-bytes")})
	req := httptest.NewRequest("POST", "/api/blogs/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestImportEndpointEditForbidden(t *testing.T) {
	r, blogs := newImportRouter(t, 2, "user")
	if err := blogs.Create(&model.Blog{Title: "别人的", AuthorID: 1, Status: "published"}); err != nil {
		t.Fatalf("create error: %v", err)
	}

	body, contentType := multipartImport(t,
		map[string]string{"blog_id": "1"},
		map[string][]byte{"post.md": []byte("新内容")},
	)
	req := httptest.NewRequest("POST", "/api/blogs/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	// 未授权的编辑不能改动原文
	blog, err := blogs.Get(1)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if strings.Contains(blog.Content, "新内容") {
		t.Fatalf("forbidden edit must not mutate the blog")
	}
}

func TestImportEndpointEditNotFound(t *testing.T) {
	r, _ := newImportRouter(t, 1, "admin")

	body, contentType := multipartImport(t,
		map[string]string{"blog_id": "99"},
		map[string][]byte{"post.md": []byte("内容")},
	)
	req := httptest.NewRequest("POST", "/api/blogs/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
