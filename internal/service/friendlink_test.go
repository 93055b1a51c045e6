package service

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newFriendLinkService(t *testing.T) *FriendLinkService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.FriendLink{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return NewFriendLinkService(repository.NewFriendLinkRepository(db))
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"http://example.com/", "http://example.com"},
		{"https://example.com/blog/", "https://example.com/blog"},
		{" example.com ", "https://example.com"},
	}
	for _, c := range cases {
		got, err := NormalizeURL(c.in)
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)
	}

	if _, err := NormalizeURL(""); !errors.Is(err, ErrInvalidLink) {
		t.Fatalf("expected ErrInvalidLink, got %v", err)
	}
}

func TestApplyDeduplicates(t *testing.T) {
	svc := newFriendLinkService(t)

	link, err := svc.Apply(FriendLinkApplyRequest{Name: "友站", URL: "example.com"})
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if link.Status != "pending" || link.IsActive {
		t.Fatalf("new application must start pending and inactive: %+v", link)
	}

	// 归一化后相同的地址视为重复
	_, err = svc.Apply(FriendLinkApplyRequest{Name: "友站2", URL: "https://example.com/"})
	if !errors.Is(err, ErrLinkExists) {
		t.Fatalf("expected ErrLinkExists, got %v", err)
	}
}

func TestApproveActivatesLink(t *testing.T) {
	svc := newFriendLinkService(t)

	link, err := svc.Apply(FriendLinkApplyRequest{Name: "友站", URL: "example.com"})
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}

	// 待审核的不出现在前台列表
	links, _, err := svc.List("", 1, 10)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("pending links must be hidden, got %d", len(links))
	}

	approved, err := svc.Approve(link.ID)
	if err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if approved.Status != "approved" || !approved.IsActive {
		t.Fatalf("approve must activate the link: %+v", approved)
	}

	links, _, err = svc.List("", 1, 10)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("approved link must be listed, got %d", len(links))
	}
}
