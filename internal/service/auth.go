package service

import (
	"errors"
	"strings"

	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/pkg/token"
	"github.com/homesite/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"k8s.io/klog/v2"
)

var (
	ErrUserExists         = errors.New("用户名或邮箱已被注册")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("账号已被禁用")
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest 登录请求，account 可以是用户名或邮箱
type LoginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthService struct {
	users  repository.UserRepository
	tokens *token.Manager
}

func NewAuthService(users repository.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register 注册新用户，密码使用 bcrypt 存储
func (s *AuthService) Register(req RegisterRequest) (*model.User, string, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     "user",
		IsActive: true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", err
	}
	klog.V(6).Infof("新用户注册: %s", user.Username)

	tok, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Login 用户名或邮箱 + 密码登录，成功返回 JWT
func (s *AuthService) Login(req LoginRequest) (*model.User, string, error) {
	account := strings.TrimSpace(req.Account)

	var user *model.User
	var err error
	if strings.Contains(account, "@") {
		user, err = s.users.GetByEmail(strings.ToLower(account))
	} else {
		user, err = s.users.GetByUsername(account)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrUserDisabled
	}

	tok, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Me 按 ID 返回当前用户信息
func (s *AuthService) Me(userID uint) (*model.User, error) {
	return s.users.Get(userID)
}
