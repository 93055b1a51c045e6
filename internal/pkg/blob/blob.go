package blob

import "context"

// Store 持久化二进制对象存储（S3 兼容）
type Store interface {
	// Put 上传对象并返回可公网访问的 URL。
	// allowOverwrite 为 false 时在 key 上追加随机后缀，避免覆盖同名对象；
	// 为 true 时同名对象直接被替换，不会产生副本。
	Put(ctx context.Context, key string, content []byte, contentType string, allowOverwrite bool) (string, error)
	// Remove 按之前返回的公网 URL 删除对象
	Remove(ctx context.Context, publicURL string) error
}
