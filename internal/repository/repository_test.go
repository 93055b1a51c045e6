package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/homesite/backend/internal/model"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{},
		&model.Blog{},
		&model.BlogAsset{},
		&model.BlogLike{},
		&model.Comment{},
		&model.CommentLike{},
		&model.Gallery{},
		&model.FriendLink{},
		&model.Document{},
		&model.Visit{},
	)
	if err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

// 可见性开关为 false 时不能在入库路上被吞掉变回公开
func TestCreateKeepsPrivateFlags(t *testing.T) {
	db := newTestDB(t)

	comments := NewCommentRepository(db)
	private := &model.Comment{TargetID: 1, TargetType: "Blog", Content: "私密", AuthorID: 1, IsPublic: false}
	if err := comments.Create(private); err != nil {
		t.Fatalf("create error: %v", err)
	}
	got, err := comments.Get(private.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.IsPublic {
		t.Fatal("private comment must stay private after create")
	}

	gallery := NewGalleryRepository(db)
	img := &model.Gallery{Title: "私照", Thumbnail: "http://blob/t", FullSize: "http://blob/f", Status: "published", IsPublic: false}
	if err := gallery.Create(img); err != nil {
		t.Fatalf("create error: %v", err)
	}
	gotImg, err := gallery.Get(img.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if gotImg.IsPublic {
		t.Fatal("private gallery image must stay private after create")
	}

	docs := NewDocumentRepository(db)
	doc := &model.Document{Title: "内部文档", BlobURL: "http://blob/d", Status: "published", IsPublic: false}
	if err := docs.Create(doc); err != nil {
		t.Fatalf("create error: %v", err)
	}
	gotDoc, err := docs.Get(doc.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if gotDoc.IsPublic {
		t.Fatal("private document must stay private after create")
	}
}
