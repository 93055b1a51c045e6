package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
)

type fakeAssetRepo struct {
	assets map[string]*model.BlogAsset
}

func (f *fakeAssetRepo) key(blogID uint, filename string) string {
	return fmt.Sprintf("%d/%s", blogID, filename)
}

func (f *fakeAssetRepo) FindByOwnerAndFilename(blogID uint, filename string) (*model.BlogAsset, error) {
	if asset, ok := f.assets[f.key(blogID, filename)]; ok {
		return asset, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAssetRepo) Upsert(asset *model.BlogAsset) error {
	f.assets[f.key(asset.BlogID, asset.Filename)] = asset
	return nil
}

func (f *fakeAssetRepo) ListByOwner(blogID uint) ([]model.BlogAsset, error) {
	var out []model.BlogAsset
	for _, a := range f.assets {
		if a.BlogID == blogID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func newAssetRouter(t *testing.T) (*gin.Engine, *fakeAssetRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := &fakeAssetRepo{assets: map[string]*model.BlogAsset{}}
	h := NewAssetHandler(repo)

	r := gin.New()
	r.GET("/api/blog/:blogId/:filename", h.Serve)
	return r, repo
}

func TestAssetServeRedirects(t *testing.T) {
	r, repo := newAssetRouter(t)
	repo.Upsert(&model.BlogAsset{BlogID: 1, Filename: "cover.png", BlobURL: "http://blob/blogs/1/images/cover.png"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/blog/1/cover.png", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "http://blob/blogs/1/images/cover.png" {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=31536000, immutable" {
		t.Fatalf("unexpected cache header: %s", cc)
	}
}

func TestAssetServeUnknownFilename(t *testing.T) {
	r, _ := newAssetRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/blog/1/missing.png", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAssetServeInvalidBlogID(t *testing.T) {
	r, _ := newAssetRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/blog/abc/cover.png", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
