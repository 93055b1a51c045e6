package mdimport

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
	"gorm.io/gorm"
)

// memoryBlobStore 内存版对象存储，记录上传次数
type memoryBlobStore struct {
	objects map[string][]byte
	types   map[string]string
	puts    int
}

func newMemoryBlobStore() *memoryBlobStore {
	return &memoryBlobStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (s *memoryBlobStore) Put(ctx context.Context, key string, content []byte, contentType string, allowOverwrite bool) (string, error) {
	s.puts++
	s.objects[key] = content
	s.types[key] = contentType
	return "https://blob.test/" + key, nil
}

func (s *memoryBlobStore) Remove(ctx context.Context, publicURL string) error {
	return nil
}

func newAssetTestDB(t *testing.T) repository.BlogAssetRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.BlogAsset{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return repository.NewBlogAssetRepository(db)
}

func TestPublisherUploadsOnceAndReuses(t *testing.T) {
	assets := newAssetTestDB(t)
	blobs := newMemoryBlobStore()
	pub := NewAssetPublisher(assets, blobs)

	path1, err := pub.Publish(context.Background(), 1, "cover.png", "封面", []byte("bytes"))
	if err != nil {
		t.Fatalf("first publish error: %v", err)
	}
	if path1 != "/api/blog/1/cover.png" {
		t.Fatalf("unexpected serving path: %s", path1)
	}
	if blobs.puts != 1 {
		t.Fatalf("expected one upload, got %d", blobs.puts)
	}

	path2, err := pub.Publish(context.Background(), 1, "cover.png", "新封面", []byte("bytes"))
	if err != nil {
		t.Fatalf("second publish error: %v", err)
	}
	if path2 != path1 {
		t.Fatalf("serving path must be stable: %s vs %s", path1, path2)
	}
	if blobs.puts != 1 {
		t.Fatalf("re-publish must not re-upload, got %d puts", blobs.puts)
	}

	// 复用分支也要更新标签
	asset, err := assets.FindByOwnerAndFilename(1, "cover.png")
	if err != nil {
		t.Fatalf("find asset error: %v", err)
	}
	if asset.Title != "新封面" {
		t.Fatalf("label must be upserted, got %s", asset.Title)
	}
}

func TestPublisherScopesRecordsByOwner(t *testing.T) {
	assets := newAssetTestDB(t)
	blobs := newMemoryBlobStore()
	pub := NewAssetPublisher(assets, blobs)

	for _, owner := range []uint{1, 2} {
		path, err := pub.Publish(context.Background(), owner, "pic.png", "", []byte("bytes"))
		if err != nil {
			t.Fatalf("publish owner=%d error: %v", owner, err)
		}
		want := fmt.Sprintf("/api/blog/%d/pic.png", owner)
		if path != want {
			t.Fatalf("unexpected path: %s", path)
		}
	}
	if blobs.puts != 2 {
		t.Fatalf("distinct owners need distinct uploads, got %d", blobs.puts)
	}
}

func TestContentTypeByName(t *testing.T) {
	cases := map[string]string{
		"a.png":   "image/png",
		"a.PNG":   "image/png",
		"a.jpg":   "image/jpeg",
		"a.jpeg":  "image/jpeg",
		"a.gif":   "image/gif",
		"a.webp":  "image/webp",
		"a.bin":   "application/octet-stream",
		"no-ext":  "application/octet-stream",
		"a.b.jpg": "image/jpeg",
	}
	for name, want := range cases {
		if got := ContentTypeByName(name); got != want {
			t.Fatalf("ContentTypeByName(%s) = %s, want %s", name, got, want)
		}
	}
}
