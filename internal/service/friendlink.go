package service

import (
	"errors"
	"net/url"
	"strings"

	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
)

var (
	ErrLinkExists  = errors.New("该链接已申请过")
	ErrInvalidLink = errors.New("链接地址不合法")
)

// FriendLinkApplyRequest 友链申请表单
type FriendLinkApplyRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	URL         string `json:"url" binding:"required,max=500"`
	Avatar      string `json:"avatar" binding:"max=500"`
	Description string `json:"description" binding:"max=200"`
	Category    string `json:"category" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// FriendLinkUpdate 友链部分字段更新
type FriendLinkUpdate struct {
	Name        *string
	URL         *string
	Avatar      *string
	Description *string
	Category    *string
	Status      *string
	IsActive    *bool
}

type FriendLinkService struct {
	links repository.FriendLinkRepository
}

func NewFriendLinkService(links repository.FriendLinkRepository) *FriendLinkService {
	return &FriendLinkService{links: links}
}

// NormalizeURL 补全协议并去掉末尾斜杠，用于申请去重
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidLink
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", ErrInvalidLink
	}
	return strings.TrimSuffix(u.String(), "/"), nil
}

// Apply 提交友链申请，进入待审核状态
func (s *FriendLinkService) Apply(req FriendLinkApplyRequest) (*model.FriendLink, error) {
	normalized, err := NormalizeURL(req.URL)
	if err != nil {
		return nil, err
	}

	if _, err := s.links.GetByURL(normalized); err == nil {
		return nil, ErrLinkExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	link := &model.FriendLink{
		Name:        strings.TrimSpace(req.Name),
		URL:         normalized,
		Avatar:      req.Avatar,
		Description: req.Description,
		Category:    req.Category,
		Email:       req.Email,
		Status:      "pending",
		IsActive:    false,
	}
	if link.Category == "" {
		link.Category = "其他"
	}
	if err := s.links.Create(link); err != nil {
		return nil, err
	}
	return link, nil
}

// List 前台友链列表，只返回已审核通过且启用的
func (s *FriendLinkService) List(category string, page, pageSize int) ([]model.FriendLink, int64, error) {
	return s.links.List(true, category, page, pageSize)
}

// ListAll 管理端友链列表，含待审核
func (s *FriendLinkService) ListAll(category string, page, pageSize int) ([]model.FriendLink, int64, error) {
	return s.links.List(false, category, page, pageSize)
}

// Approve 审核通过并启用
func (s *FriendLinkService) Approve(id uint) (*model.FriendLink, error) {
	link, err := s.links.Get(id)
	if err != nil {
		return nil, err
	}
	link.Status = "approved"
	link.IsActive = true
	if err := s.links.Save(link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *FriendLinkService) Update(id uint, upd FriendLinkUpdate) (*model.FriendLink, error) {
	link, err := s.links.Get(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		link.Name = *upd.Name
	}
	if upd.URL != nil {
		normalized, err := NormalizeURL(*upd.URL)
		if err != nil {
			return nil, err
		}
		link.URL = normalized
	}
	if upd.Avatar != nil {
		link.Avatar = *upd.Avatar
	}
	if upd.Description != nil {
		link.Description = *upd.Description
	}
	if upd.Category != nil {
		link.Category = *upd.Category
	}
	if upd.Status != nil {
		link.Status = *upd.Status
	}
	if upd.IsActive != nil {
		link.IsActive = *upd.IsActive
	}

	if err := s.links.Save(link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *FriendLinkService) Delete(id uint) error {
	if _, err := s.links.Get(id); err != nil {
		return err
	}
	return s.links.Delete(id)
}

// Visit 访问计数加一并返回跳转地址
func (s *FriendLinkService) Visit(id uint) (string, error) {
	link, err := s.links.Get(id)
	if err != nil {
		return "", err
	}
	link.VisitCount++
	if err := s.links.Save(link); err != nil {
		return "", err
	}
	return link.URL, nil
}
