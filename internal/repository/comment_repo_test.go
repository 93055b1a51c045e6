package repository

import (
	"testing"

	"github.com/homesite/backend/internal/model"
)

func seedCommentTree(t *testing.T, repo CommentRepository) (root, child, grandchild *model.Comment) {
	t.Helper()
	root = &model.Comment{TargetID: 1, TargetType: "Blog", Content: "顶层", AuthorID: 1, IsPublic: true}
	if err := repo.Create(root); err != nil {
		t.Fatalf("create error: %v", err)
	}
	child = &model.Comment{TargetID: 1, TargetType: "Blog", Content: "回复", AuthorID: 2, ParentID: &root.ID, IsPublic: true}
	if err := repo.Create(child); err != nil {
		t.Fatalf("create error: %v", err)
	}
	grandchild = &model.Comment{TargetID: 1, TargetType: "Blog", Content: "回复的回复", AuthorID: 1, ParentID: &child.ID, IsPublic: true}
	if err := repo.Create(grandchild); err != nil {
		t.Fatalf("create error: %v", err)
	}
	return root, child, grandchild
}

func TestCommentDeleteTree(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	root, _, _ := seedCommentTree(t, repo)

	deleted, err := repo.DeleteTree(root.ID)
	if err != nil {
		t.Fatalf("delete tree error: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted comments, got %d", deleted)
	}

	if _, err := repo.Get(root.ID); err != ErrNotFound {
		t.Fatalf("root must be gone, got %v", err)
	}
}

func TestCommentDeleteSubtreeKeepsRoot(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	root, child, _ := seedCommentTree(t, repo)

	deleted, err := repo.DeleteTree(child.ID)
	if err != nil {
		t.Fatalf("delete tree error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted comments, got %d", deleted)
	}
	if _, err := repo.Get(root.ID); err != nil {
		t.Fatalf("root must survive: %v", err)
	}
}

func TestCommentVisibility(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)

	public := &model.Comment{TargetID: 1, TargetType: "Blog", Content: "公开", AuthorID: 1, IsPublic: true}
	private := &model.Comment{TargetID: 1, TargetType: "Blog", Content: "私密", AuthorID: 2, IsPublic: false}
	for _, c := range []*model.Comment{public, private} {
		if err := repo.Create(c); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	// 访客只见公开评论
	comments, total, err := repo.ListTopLevel("Blog", 1, true, 0, 1, 10)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 1 || comments[0].Content != "公开" {
		t.Fatalf("guest must only see public comments, total=%d", total)
	}

	// 作者可见自己的私密评论
	_, total, err = repo.ListTopLevel("Blog", 1, true, 2, 1, 10)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 2 {
		t.Fatalf("author must see own private comment, total=%d", total)
	}

	// 管理员查询跳过过滤
	_, total, err = repo.ListTopLevel("Blog", 1, false, 0, 1, 10)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 2 {
		t.Fatalf("admin must see all comments, total=%d", total)
	}
}
