package service

import (
	"time"

	"github.com/homesite/backend/internal/repository"
	"k8s.io/klog/v2"
)

// SiteStats 站点概览统计
type SiteStats struct {
	BlogCount     int64 `json:"blog_count"`
	CommentCount  int64 `json:"comment_count"`
	DocumentCount int64 `json:"document_count"`
	GalleryCount  int64 `json:"gallery_count"`
	VisitsToday   int64 `json:"visits_today"`
	VisitsTotal   int64 `json:"visits_total"`
}

type StatsService struct {
	blogs    repository.BlogRepository
	comments repository.CommentRepository
	docs     repository.DocumentRepository
	gallery  repository.GalleryRepository
	visits   repository.VisitRepository
}

func NewStatsService(
	blogs repository.BlogRepository,
	comments repository.CommentRepository,
	docs repository.DocumentRepository,
	gallery repository.GalleryRepository,
	visits repository.VisitRepository,
) *StatsService {
	return &StatsService{blogs: blogs, comments: comments, docs: docs, gallery: gallery, visits: visits}
}

// Summary 汇总各模块数量与访问量。单项失败不影响整体，计为 0。
func (s *StatsService) Summary() *SiteStats {
	stats := &SiteStats{}
	published := []string{"published", "pinned"}

	var err error
	if stats.BlogCount, err = s.blogs.Count(published); err != nil {
		klog.Errorf("统计博客数量失败: %v", err)
	}
	if stats.CommentCount, err = s.comments.Count(""); err != nil {
		klog.Errorf("统计评论数量失败: %v", err)
	}
	if stats.DocumentCount, err = s.docs.Count(published); err != nil {
		klog.Errorf("统计文档数量失败: %v", err)
	}
	if stats.GalleryCount, err = s.gallery.Count([]string{"published"}); err != nil {
		klog.Errorf("统计相册数量失败: %v", err)
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.VisitsToday, err = s.visits.CountSince(midnight); err != nil {
		klog.Errorf("统计今日访问量失败: %v", err)
	}
	if stats.VisitsTotal, err = s.visits.CountTotal(); err != nil {
		klog.Errorf("统计总访问量失败: %v", err)
	}
	return stats
}
