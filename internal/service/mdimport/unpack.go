package mdimport

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
)

// ErrMissingMarkdown 上传文件中缺少 .md 文件
var ErrMissingMarkdown = errors.New("missing markdown file")

// UploadedFile 导入请求中的单个上传文件
type UploadedFile struct {
	Name    string
	Content []byte
}

// BuildAssetPool 把“一个 Markdown 文件 + 若干附件（散文件或 zip 包）”
// 展开为扁平的资源池：标准化相对路径 -> 文件内容。
// 同名路径后写覆盖先写（同一次导入内重名属用户错误，按最后一个为准）。
func BuildAssetPool(files []UploadedFile) (string, map[string][]byte, error) {
	var markdown *UploadedFile
	for i := range files {
		if isMarkdownName(files[i].Name) {
			markdown = &files[i]
			break
		}
	}
	if markdown == nil {
		return "", nil, ErrMissingMarkdown
	}

	pool := make(map[string][]byte)
	for i := range files {
		f := &files[i]
		if f == markdown {
			continue
		}
		if isZipName(f.Name) {
			if err := unpackZip(f.Content, pool); err != nil {
				return "", nil, err
			}
			continue
		}
		pool[normalizeSlashes(f.Name)] = f.Content
	}

	return string(markdown.Content), pool, nil
}

func unpackZip(data []byte, pool map[string][]byte) error {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return err
		}
		pool[normalizeSlashes(entry.Name)] = content
	}
	return nil
}

func isMarkdownName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".md")
}

func isZipName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".zip")
}

func normalizeSlashes(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
