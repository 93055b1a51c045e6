package mdimport

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

func buildZip(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create zip entry error: %v", err)
		}
		if _, err := f.Write(content); err != nil {
			t.Fatalf("write zip entry error: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip error: %v", err)
	}
	return buf.Bytes()
}

func TestBuildAssetPoolLooseFiles(t *testing.T) {
	files := []UploadedFile{
		{Name: "post.md", Content: []byte("# hello")},
		{Name: "pic.png", Content: []byte("png")},
		{Name: `img\nested.png`, Content: []byte("nested")},
	}

	markdown, pool, err := BuildAssetPool(files)
	if err != nil {
		t.Fatalf("BuildAssetPool error: %v", err)
	}
	if markdown != "# hello" {
		t.Fatalf("unexpected markdown: %s", markdown)
	}
	if string(pool["pic.png"]) != "png" {
		t.Fatalf("missing loose file in pool: %v", pool)
	}
	if string(pool["img/nested.png"]) != "nested" {
		t.Fatalf("backslash path must be normalized: %v", pool)
	}
}

func TestBuildAssetPoolZip(t *testing.T) {
	zipData := buildZip(t, map[string][]byte{
		"img/a.png": []byte("a"),
		"b.png":     []byte("b"),
	})

	files := []UploadedFile{
		{Name: "POST.MD", Content: []byte("body")},
		{Name: "assets.ZIP", Content: zipData},
	}

	_, pool, err := BuildAssetPool(files)
	if err != nil {
		t.Fatalf("BuildAssetPool error: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("expected 2 pool entries, got %d", len(pool))
	}
	if string(pool["img/a.png"]) != "a" || string(pool["b.png"]) != "b" {
		t.Fatalf("unexpected pool: %v", pool)
	}
}

func TestBuildAssetPoolMissingMarkdown(t *testing.T) {
	files := []UploadedFile{
		{Name: "pic.png", Content: []byte("png")},
	}

	_, _, err := BuildAssetPool(files)
	if !errors.Is(err, ErrMissingMarkdown) {
		t.Fatalf("expected ErrMissingMarkdown, got %v", err)
	}
}

func TestBuildAssetPoolLastWriteWins(t *testing.T) {
	zipData := buildZip(t, map[string][]byte{
		"pic.png": []byte("from-zip"),
	})

	files := []UploadedFile{
		{Name: "post.md", Content: []byte("body")},
		{Name: "pic.png", Content: []byte("loose")},
		{Name: "assets.zip", Content: zipData},
	}

	_, pool, err := BuildAssetPool(files)
	if err != nil {
		t.Fatalf("BuildAssetPool error: %v", err)
	}
	if string(pool["pic.png"]) != "from-zip" {
		t.Fatalf("later entry must overwrite earlier one, got %s", pool["pic.png"])
	}
}
