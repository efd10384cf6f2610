package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-rbac-api/internal/domain"
)

type UserRepo struct {
	lifecycleStore[domain.User]
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{lifecycleStore[domain.User]{db: db}}
}

func (r *UserRepo) Create(u *domain.User) error {
	err := r.db.Omit(clause.Associations).Create(u).Error
	if err != nil && isDupKey(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserRepo) FindByID(id string, withDeleted bool) (*domain.User, error) {
	return r.findByID(id, withDeleted, "Role")
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.Preload("Role").First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(q domain.UserListQuery) ([]domain.User, int64, error) {
	tx := r.db.Model(&domain.User{})
	if q.WithDeleted {
		tx = tx.Unscoped()
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("email LIKE ? OR username LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	if err := tx.Preload("Role").Order("created_at DESC").
		Limit(q.Limit).Offset(q.Offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) Update(u *domain.User) error {
	// 只写本表字段，角色关联由 role_id 承载
	err := r.db.Omit(clause.Associations).Save(u).Error
	if err != nil && isDupKey(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserRepo) CountByRoleID(roleID string) (int64, error) {
	var n int64
	err := r.db.Model(&domain.User{}).Where("role_id = ?", roleID).Count(&n).Error
	return n, err
}

func (r *UserRepo) SoftDelete(id string) error { return r.softDelete(id) }
func (r *UserRepo) Restore(id string) error    { return r.restore(id) }
func (r *UserRepo) Purge(id string) error      { return r.purge(id) }

// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
