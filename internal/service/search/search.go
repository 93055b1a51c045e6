package search

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
	"k8s.io/klog/v2"
)

const candidateLimit = 50

// Result 统一搜索结果条目
type Result struct {
	ID             uint     `json:"id"`
	Title          string   `json:"title"`
	OriginalTitle  string   `json:"original_title"`
	Excerpt        string   `json:"excerpt"`
	Snippet        string   `json:"snippet"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Type           string   `json:"type"` // blog, document
	URL            string   `json:"url"`
	RelevanceScore int      `json:"relevance_score"`
}

// Response 搜索响应：分类结果 + 按相关性合并分页后的结果
type Response struct {
	Blogs      []Result `json:"blogs"`
	Documents  []Result `json:"documents"`
	Combined   []Result `json:"combined"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
	SearchTerm string   `json:"search_term"`
}

type Service struct {
	blogs repository.BlogRepository
	docs  repository.DocumentRepository
}

func NewService(blogs repository.BlogRepository, docs repository.DocumentRepository) *Service {
	return &Service{blogs: blogs, docs: docs}
}

// Search 跨博客与文档的统一搜索。数据库只做 LIKE 初筛，
// 相关性打分、高亮和摘要片段在进程内完成，合并结果按得分排序后分页。
func (s *Service) Search(term, typ string, isAdmin bool, page, pageSize int) (*Response, error) {
	resp := &Response{
		Blogs:      []Result{},
		Documents:  []Result{},
		Combined:   []Result{},
		Page:       page,
		PageSize:   pageSize,
		SearchTerm: term,
	}
	if term == "" {
		return resp, nil
	}

	if typ == "" || typ == "blog" {
		blogs, err := s.blogs.SearchCandidates(term, []string{"published", "pinned"}, candidateLimit)
		if err != nil {
			klog.Errorf("博客搜索失败: %v", err)
		} else {
			resp.Blogs = scoreBlogs(blogs, term)
		}
	}

	if typ == "" || typ == "document" {
		docs, err := s.docs.SearchCandidates(term, !isAdmin, candidateLimit)
		if err != nil {
			klog.Errorf("文档搜索失败: %v", err)
		} else {
			resp.Documents = scoreDocuments(docs, term)
		}
	}

	combined := make([]Result, 0, len(resp.Blogs)+len(resp.Documents))
	combined = append(combined, resp.Blogs...)
	combined = append(combined, resp.Documents...)
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].RelevanceScore > combined[j].RelevanceScore
	})

	resp.Total = len(combined)
	resp.TotalPages = (resp.Total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start < len(combined) {
		end := start + pageSize
		if end > len(combined) {
			end = len(combined)
		}
		resp.Combined = combined[start:end]
	}
	return resp, nil
}

// scoreBlogs 标题命中权重最高，其次摘要、正文、分类、标签
func scoreBlogs(blogs []model.Blog, term string) []Result {
	lower := strings.ToLower(term)
	results := make([]Result, 0, len(blogs))
	for _, b := range blogs {
		score := 0
		if strings.Contains(strings.ToLower(b.Title), lower) {
			score += 10
		}
		if strings.Contains(strings.ToLower(b.Excerpt), lower) {
			score += 8
		}
		if strings.Contains(strings.ToLower(b.Content), lower) {
			score += 5
		}
		if strings.Contains(strings.ToLower(b.Category), lower) {
			score += 3
		}
		if tagsContain(b.Tags, lower) {
			score += 2
		}

		results = append(results, Result{
			ID:             b.ID,
			Title:          Highlight(b.Title, term),
			OriginalTitle:  b.Title,
			Excerpt:        Highlight(b.Excerpt, term),
			Snippet:        Snippet(b.Content, term, 150),
			Category:       b.Category,
			Tags:           b.Tags,
			Type:           "blog",
			URL:            fmt.Sprintf("/blog/%d", b.ID),
			RelevanceScore: score,
		})
	}
	sortByScore(results)
	return results
}

func scoreDocuments(docs []model.Document, term string) []Result {
	lower := strings.ToLower(term)
	results := make([]Result, 0, len(docs))
	for _, d := range docs {
		score := 0
		if strings.Contains(strings.ToLower(d.Title), lower) {
			score += 10
		}
		if strings.Contains(strings.ToLower(d.Description), lower) {
			score += 8
		}
		if strings.Contains(strings.ToLower(d.Category), lower) {
			score += 3
		}
		if tagsContain(d.Tags, lower) {
			score += 2
		}

		results = append(results, Result{
			ID:             d.ID,
			Title:          Highlight(d.Title, term),
			OriginalTitle:  d.Title,
			Excerpt:        Highlight(d.Description, term),
			Snippet:        Snippet(d.Description, term, 150),
			Category:       d.Category,
			Tags:           d.Tags,
			Type:           "document",
			URL:            fmt.Sprintf("/documents/%d", d.ID),
			RelevanceScore: score,
		})
	}
	sortByScore(results)
	return results
}

func sortByScore(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
}

func tagsContain(tags model.StringList, lowerTerm string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), lowerTerm) {
			return true
		}
	}
	return false
}

// foldIndex 大小写不敏感地定位 substr 在 s 中的首次出现，
// 返回以 s 自身计的字节偏移和命中长度。不能在小写副本上算偏移再切原文：
// 个别字符（U+0130、U+212A 等）小写后字节数会变，偏移会错位。
func foldIndex(s, substr string) (start, matchLen int) {
	if substr == "" {
		return -1, 0
	}
	termRunes := utf8.RuneCountInString(substr)

	for i := 0; i < len(s); {
		end, count := i, 0
		for end < len(s) && count < termRunes {
			_, size := utf8.DecodeRuneInString(s[end:])
			end += size
			count++
		}
		if count < termRunes {
			return -1, 0
		}
		if strings.EqualFold(s[i:end], substr) {
			return i, end - i
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return -1, 0
}

// Highlight 用 <mark> 包裹命中的关键词（大小写不敏感，保留原文大小写）
func Highlight(text, term string) string {
	if term == "" || text == "" {
		return text
	}

	var b strings.Builder
	pos := 0
	for {
		offset, matchLen := foldIndex(text[pos:], term)
		if offset < 0 {
			b.WriteString(text[pos:])
			return b.String()
		}
		start := pos + offset
		end := start + matchLen
		b.WriteString(text[pos:start])
		b.WriteString("<mark>")
		b.WriteString(text[start:end])
		b.WriteString("</mark>")
		pos = end
	}
}

// Snippet 取第一处命中前后各一段文本作为片段，未命中取开头
func Snippet(content, term string, length int) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)

	center := 0
	if start, _ := foldIndex(content, term); start >= 0 {
		center = utf8.RuneCountInString(content[:start])
	}

	start := center - length/2
	if start < 0 {
		start = 0
	}
	end := start + length
	if end > len(runes) {
		end = len(runes)
	}

	snippet := string(runes[start:end])
	if start > 0 {
		snippet = "…" + snippet
	}
	if end < len(runes) {
		snippet += "…"
	}
	return snippet
}
