package service

import (
	"errors"
	"fmt"

	"go-rbac-api/internal/audit"
	"go-rbac-api/internal/core/auth"
	"go-rbac-api/internal/domain"
	"go-rbac-api/pkg/utils"
)

type AuthService struct {
	users    domain.UserRepository
	roles    domain.RoleRepository
	jwter    *auth.JWTer
	recorder *audit.Recorder
}

func NewAuthService(users domain.UserRepository, roles domain.RoleRepository, jwter *auth.JWTer, recorder *audit.Recorder) *AuthService {
	return &AuthService{users: users, roles: roles, jwter: jwter, recorder: recorder}
}

// Signup 公开注册口，只允许产生首个 admin：
// 还没有 admin 时注册者即成为 admin；已有 admin 则一律拒绝。
func (s *AuthService) Signup(username, email, password string) (*domain.User, error) {
	adminRole, err := s.roles.Resolve(domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("resolve admin role: %w", err)
	}
	// user 角色顺带建好，后台建号时直接可用
	if _, err := s.roles.Resolve(domain.RoleUser); err != nil {
		return nil, fmt.Errorf("resolve user role: %w", err)
	}

	n, err := s.users.CountByRoleID(adminRole.ID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, domain.ErrAdminExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RoleID:       &adminRole.ID,
		Role:         adminRole,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	s.recorder.Record("auth.signup", u.ID, "user:"+u.ID)
	return u, nil
}

// Login 校验密码并签发 token；角色名作为签发时刻的快照写入 claim
func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.users.FindByEmail(email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.jwter.Issue(u.ID, u.RoleName())
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, u, nil
}

// Register 管理员建号，角色按名字解析（缺失则惰性创建）。
// 与 Signup 不同：这里不设 admin 上限。
func (s *AuthService) Register(username, email, password, roleName, performedBy string) (*domain.User, error) {
	if roleName == "" {
		roleName = domain.RoleUser
	}
	role, err := s.roles.Resolve(roleName)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RoleID:       &role.ID,
		Role:         role,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	s.recorder.Record("user.create", performedBy, "user:"+u.ID)
	return u, nil
}
