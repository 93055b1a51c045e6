package repository

import (
	"testing"

	"github.com/homesite/backend/internal/model"
)

func TestAssetUpsertUpdatesExisting(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogAssetRepository(db)

	first := &model.BlogAsset{BlogID: 1, Filename: "cover.png", Title: "封面", BlobURL: "http://blob/a"}
	if err := repo.Upsert(first); err != nil {
		t.Fatalf("upsert error: %v", err)
	}

	// 同键再写只更新 title 和 blob_url，不产生第二条记录
	second := &model.BlogAsset{BlogID: 1, Filename: "cover.png", Title: "新封面", BlobURL: "http://blob/b"}
	if err := repo.Upsert(second); err != nil {
		t.Fatalf("upsert error: %v", err)
	}

	assets, err := repo.ListByOwner(1)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}
	if assets[0].Title != "新封面" || assets[0].BlobURL != "http://blob/b" {
		t.Fatalf("upsert did not update fields: %+v", assets[0])
	}
}

func TestAssetScopedByBlog(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogAssetRepository(db)

	if err := repo.Upsert(&model.BlogAsset{BlogID: 1, Filename: "a.png", BlobURL: "http://blob/1"}); err != nil {
		t.Fatalf("upsert error: %v", err)
	}
	if err := repo.Upsert(&model.BlogAsset{BlogID: 2, Filename: "a.png", BlobURL: "http://blob/2"}); err != nil {
		t.Fatalf("upsert error: %v", err)
	}

	asset, err := repo.FindByOwnerAndFilename(2, "a.png")
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if asset.BlobURL != "http://blob/2" {
		t.Fatalf("expected blog 2's asset, got %s", asset.BlobURL)
	}

	if _, err := repo.FindByOwnerAndFilename(3, "a.png"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
