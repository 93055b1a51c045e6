package search

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
	"gorm.io/gorm"
)

func newSearchService(t *testing.T) (*Service, repository.BlogRepository, repository.DocumentRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.Blog{}, &model.Document{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	blogs := repository.NewBlogRepository(db)
	docs := repository.NewDocumentRepository(db)
	return NewService(blogs, docs), blogs, docs
}

func TestSearchTitleOutranksContent(t *testing.T) {
	svc, blogs, _ := newSearchService(t)

	inContent := &model.Blog{Title: "随笔", Content: "这篇讲 Docker 部署", AuthorID: 1, Status: "published"}
	inTitle := &model.Blog{Title: "Docker 入门", Content: "容器基础", AuthorID: 1, Status: "published"}
	for _, b := range []*model.Blog{inContent, inTitle} {
		if err := blogs.Create(b); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	resp, err := svc.Search("docker", "", false, 1, 10)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(resp.Blogs) != 2 {
		t.Fatalf("expected 2 blog hits, got %d", len(resp.Blogs))
	}
	if resp.Blogs[0].OriginalTitle != "Docker 入门" {
		t.Fatalf("title match must rank first, got %s", resp.Blogs[0].OriginalTitle)
	}
	if resp.Blogs[0].RelevanceScore <= resp.Blogs[1].RelevanceScore {
		t.Fatalf("title hit must outscore content hit: %d <= %d",
			resp.Blogs[0].RelevanceScore, resp.Blogs[1].RelevanceScore)
	}
}

func TestSearchExcludesDrafts(t *testing.T) {
	svc, blogs, _ := newSearchService(t)

	if err := blogs.Create(&model.Blog{Title: "Go 草稿", AuthorID: 1, Status: "draft"}); err != nil {
		t.Fatalf("create error: %v", err)
	}

	resp, err := svc.Search("go", "", false, 1, 10)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(resp.Blogs) != 0 {
		t.Fatalf("drafts must not appear in search, got %d hits", len(resp.Blogs))
	}
}

func TestSearchCombinedPagination(t *testing.T) {
	svc, blogs, docs := newSearchService(t)

	for i := 0; i < 3; i++ {
		if err := blogs.Create(&model.Blog{Title: "redis 笔记", AuthorID: 1, Status: "published"}); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}
	if err := docs.Create(&model.Document{Title: "redis 手册", BlobURL: "http://blob/doc", IsPublic: true, Status: "published"}); err != nil {
		t.Fatalf("create error: %v", err)
	}

	resp, err := svc.Search("redis", "", false, 2, 3)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if resp.Total != 4 {
		t.Fatalf("expected total 4, got %d", resp.Total)
	}
	if resp.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", resp.TotalPages)
	}
	if len(resp.Combined) != 1 {
		t.Fatalf("expected 1 result on last page, got %d", len(resp.Combined))
	}
}

func TestHighlightKeepsOriginalCase(t *testing.T) {
	got := Highlight("Docker 与 docker compose", "docker")
	want := "<mark>Docker</mark> 与 <mark>docker</mark> compose"
	if got != want {
		t.Fatalf("highlight mismatch:\n got:  %s\n want: %s", got, want)
	}
}

func TestHighlightNoMatch(t *testing.T) {
	if got := Highlight("纯文本", "docker"); got != "纯文本" {
		t.Fatalf("unexpected highlight result: %s", got)
	}
}

// U+212A（开尔文符号）小写后从 3 字节缩成 1 字节，
// 命中偏移必须按原文计算，否则切片错位
func TestHighlightFoldChangesByteLength(t *testing.T) {
	text := "温度 K 单位与 kg 千克"

	got := Highlight(text, "k")
	want := "温度 <mark>K</mark> 单位与 <mark>k</mark>g 千克"
	if got != want {
		t.Fatalf("highlight mismatch:\n got:  %s\n want: %s", got, want)
	}
}

func TestSnippetFoldChangesByteLength(t *testing.T) {
	content := strings.Repeat("前", 200) + "K" + strings.Repeat("后", 200)

	got := Snippet(content, "k", 150)
	if !strings.Contains(got, "K") {
		t.Fatalf("snippet must center on the folded match: %s", got)
	}
	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated snippet must carry ellipses: %s", got)
	}
}

func TestSnippetCentersOnMatch(t *testing.T) {
	content := strings.Repeat("前", 200) + "关键词" + strings.Repeat("后", 200)
	got := Snippet(content, "关键词", 150)

	if !strings.Contains(got, "关键词") {
		t.Fatalf("snippet must contain the match: %s", got)
	}
	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated snippet must carry ellipses: %s", got)
	}
}

func TestSnippetNoMatchTakesHead(t *testing.T) {
	content := strings.Repeat("内容", 200)
	got := Snippet(content, "缺失", 150)
	if strings.HasPrefix(got, "…") {
		t.Fatalf("head snippet must not start with an ellipsis: %s", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated snippet must end with an ellipsis: %s", got)
	}
}
