package mdimport

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"k8s.io/klog/v2"
)

// imageRefPattern 匹配 ![alt](href) 以及可选的带引号标题
var imageRefPattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)

// absoluteRefPattern 绝对地址与内联 data URI，不做重写
var absoluteRefPattern = regexp.MustCompile(`(?i)^(https?:|data:)`)

// Publisher 把解析到的资源发布到持久存储，返回稳定的访问路径
type Publisher interface {
	Publish(ctx context.Context, ownerID uint, filename, label string, content []byte) (string, error)
}

// Rewriter 扫描 Markdown 中的图片引用，解析资源池并重写为稳定访问路径
type Rewriter struct {
	publisher Publisher
}

func NewRewriter(publisher Publisher) *Rewriter {
	return &Rewriter{publisher: publisher}
}

// Rewrite 对每个图片引用：绝对地址跳过；本地引用先精确匹配资源池，
// 再按 basename 回退；命中则发布并替换 href，未命中记一条告警并保留原文。
// 所有替换值先收集完，再用同一正则做一次性替换，保证替换顺序与原文一致。
func (r *Rewriter) Rewrite(ctx context.Context, ownerID uint, markdown string, pool map[string][]byte) (string, []string) {
	matches := imageRefPattern.FindAllStringSubmatch(markdown, -1)
	if len(matches) == 0 {
		return markdown, nil
	}

	warnings := []string{}
	replacements := make([]string, len(matches))

	for i, m := range matches {
		full, alt, href := m[0], m[1], m[2]
		replacements[i] = full

		if absoluteRefPattern.MatchString(href) {
			continue
		}

		norm := normalizeRef(href)
		content, ok := resolve(pool, norm)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("asset not found: %s", href))
			continue
		}

		filename := baseName(norm)
		if filename == "" {
			filename = fmt.Sprintf("asset-%d", time.Now().UnixMilli())
		}

		servingPath, err := r.publisher.Publish(ctx, ownerID, filename, alt, content)
		if err != nil {
			klog.Errorf("发布资源失败 owner=%d filename=%s: %v", ownerID, filename, err)
			warnings = append(warnings, fmt.Sprintf("failed to publish asset: %s", href))
			continue
		}

		replacements[i] = strings.Replace(full, href, servingPath, 1)
	}

	idx := 0
	rewritten := imageRefPattern.ReplaceAllStringFunc(markdown, func(string) string {
		out := replacements[idx]
		idx++
		return out
	})
	return rewritten, warnings
}

// resolve 精确路径优先；未命中时按 basename 回退，
// 池键按字典序遍历保证回退结果确定。
func resolve(pool map[string][]byte, norm string) ([]byte, bool) {
	if content, ok := pool[norm]; ok {
		return content, true
	}

	base := baseName(norm)
	if base == "" {
		return nil, false
	}
	if content, ok := pool[base]; ok {
		return content, true
	}

	keys := make([]string, 0, len(pool))
	for k := range pool {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if baseName(k) == base {
			return pool[k], true
		}
	}
	return nil, false
}

// normalizeRef 本地引用标准化：去掉开头的 ./ 与 /，反斜杠转正斜杠
func normalizeRef(href string) string {
	s := strings.TrimSpace(href)
	s = strings.TrimPrefix(s, "./")
	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.TrimPrefix(s, "/")
	return s
}

func baseName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
