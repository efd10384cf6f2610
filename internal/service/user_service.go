package service

import (
	"fmt"

	"go-rbac-api/internal/audit"
	"go-rbac-api/internal/domain"
	"go-rbac-api/pkg/utils"
)

type UserService struct {
	users    domain.UserRepository
	roles    domain.RoleRepository
	recorder *audit.Recorder
}

func NewUserService(users domain.UserRepository, roles domain.RoleRepository, recorder *audit.Recorder) *UserService {
	return &UserService{users: users, roles: roles, recorder: recorder}
}

func (s *UserService) List(q domain.UserListQuery) ([]domain.User, int64, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	return s.users.List(q)
}

func (s *UserService) GetByID(id string, withDeleted bool) (*domain.User, error) {
	return s.users.FindByID(id, withDeleted)
}

// UserUpdate 部分更新：nil 字段保持原值
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// Update 仅对 Active 用户有效（软删行走默认 scope 查不到）
func (s *UserService) Update(id string, in UserUpdate, performedBy string) (*domain.User, error) {
	u, err := s.users.FindByID(id, false)
	if err != nil {
		return nil, err
	}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	s.recorder.Record("user.update", performedBy, "user:"+id)
	return u, nil
}

func (s *UserService) SoftDelete(id, performedBy string) error {
	if err := s.users.SoftDelete(id); err != nil {
		return err
	}
	s.recorder.Record("user.soft_delete", performedBy, "user:"+id)
	return nil
}

func (s *UserService) Restore(id, performedBy string) error {
	if err := s.users.Restore(id); err != nil {
		return err
	}
	s.recorder.Record("user.restore", performedBy, "user:"+id)
	return nil
}

func (s *UserService) Purge(id, performedBy string) error {
	if err := s.users.Purge(id); err != nil {
		return err
	}
	s.recorder.Record("user.purge", performedBy, "user:"+id)
	return nil
}

// AssignRole 改库即生效；对方已签发的旧 token 仍携带旧角色快照
func (s *UserService) AssignRole(userID, roleID, performedBy string) (*domain.User, error) {
	u, err := s.users.FindByID(userID, false)
	if err != nil {
		return nil, err
	}
	role, err := s.roles.FindByID(roleID)
	if err != nil {
		return nil, err
	}
	u.RoleID = &role.ID
	u.Role = role
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	s.recorder.Record("user.assign_role", performedBy, "user:"+userID)
	return u, nil
}

func (s *UserService) RevokeRole(userID, performedBy string) error {
	u, err := s.users.FindByID(userID, false)
	if err != nil {
		return err
	}
	u.RoleID = nil
	u.Role = nil
	if err := s.users.Update(u); err != nil {
		return err
	}
	s.recorder.Record("user.revoke_role", performedBy, "user:"+userID)
	return nil
}
