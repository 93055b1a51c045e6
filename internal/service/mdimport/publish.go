package mdimport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/pkg/blob"
	"github.com/homesite/backend/internal/repository"
	"k8s.io/klog/v2"
)

// AssetPublisher 确保 (博客, 文件名) 对应的二进制资源在对象存储中只上传一次，
// 并维护 BlogAsset 映射记录。
type AssetPublisher struct {
	assets repository.BlogAssetRepository
	blobs  blob.Store
}

func NewAssetPublisher(assets repository.BlogAssetRepository, blobs blob.Store) *AssetPublisher {
	return &AssetPublisher{assets: assets, blobs: blobs}
}

// Publish 已有映射记录时直接复用 blob_url（重复导入不重新上传）；
// 否则按覆盖语义上传后建立记录。alt 文本作为可变元数据，两个分支都会更新。
// 返回稳定访问路径，资源路由在请求时再解析到真实的 blob 地址。
func (p *AssetPublisher) Publish(ctx context.Context, ownerID uint, filename, label string, content []byte) (string, error) {
	var blobURL string

	existing, err := p.assets.FindByOwnerAndFilename(ownerID, filename)
	switch {
	case err == nil:
		blobURL = existing.BlobURL
		klog.V(6).Infof("复用已有资源: blog=%d filename=%s", ownerID, filename)
	case errors.Is(err, repository.ErrNotFound):
		key := fmt.Sprintf("blogs/%d/images/%s", ownerID, filename)
		blobURL, err = p.blobs.Put(ctx, key, content, ContentTypeByName(filename), true)
		if err != nil {
			return "", err
		}
		klog.V(6).Infof("上传新资源: %s -> %s", key, blobURL)
	default:
		return "", err
	}

	if err := p.assets.Upsert(&model.BlogAsset{
		BlogID:   ownerID,
		Filename: filename,
		Title:    label,
		BlobURL:  blobURL,
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("/api/blog/%d/%s", ownerID, filename), nil
}

// ContentTypeByName 按扩展名推断图片类型，未知类型退回二进制流
func ContentTypeByName(filename string) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i+1:])
	}
	switch ext {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
