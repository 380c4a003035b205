package service

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"autoparts_erp_v1_202608/internal/middleware"
	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/repository"
)

// ErrBadCredentials 用户名或密码错误；登录失败统一返回这个，不暴露具体原因
var ErrBadCredentials = errors.New("用户名或密码错误")

// AuthService 系统登录
type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// TokenPair 登录/刷新返回的令牌对
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login 用户名密码登录，校验 bcrypt 哈希后签发令牌
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, *model.SysUser, error) {
	if username == "" || password == "" {
		return nil, nil, ErrBadCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil, ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrBadCredentials
	}

	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// Refresh 用 Refresh Token 换新令牌对
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh" {
		return nil, ErrBadCredentials
	}

	// 刷新时重新确认用户还在、还启用
	user, err := s.userRepo.GetByUsername(ctx, claims.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrBadCredentials
	}

	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// EnsureAdmin 启动时保证管理员账号存在；已存在则什么都不做
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.Create(ctx, &model.SysUser{
		Username: username,
		Password: string(hash),
		Name:     "Administrator",
		Role:     "admin",
		IsActive: true,
	}); err != nil {
		return err
	}
	log.Printf("[AuthService] 初始管理员账号已创建: %s", username)
	return nil
}
