package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-rbac-api/internal/domain"
	"go-rbac-api/pkg/utils"
)

type RoleRepo struct{ db *gorm.DB }

func NewRoleRepo(db *gorm.DB) *RoleRepo { return &RoleRepo{db: db} }

// Resolve 按规范化名字查角色，缺失则创建；并发下唯一键兜底再查一次
func (r *RoleRepo) Resolve(name string) (*domain.Role, error) {
	name = domain.NormalizeRole(name)
	if name == "" {
		return nil, domain.ErrRoleNotFound
	}

	var role domain.Role
	err := r.db.First(&role, "name = ?", name).Error
	if err == nil {
		return &role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role = domain.Role{ID: utils.NewID(), Name: name}
	if e := r.db.Create(&role).Error; e != nil {
		if isDupKey(e) {
			if e2 := r.db.First(&role, "name = ?", name).Error; e2 == nil {
				return &role, nil
			}
		}
		return nil, e
	}
	return &role, nil
}

func (r *RoleRepo) FindByID(id string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.First(&role, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}
