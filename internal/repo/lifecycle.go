package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-rbac-api/internal/domain"
)

// lifecycleStore 软删生命周期的通用实现，User/Project 共用。
// 状态机：Active → SoftDeleted →（restore）Active /（purge）彻底删除。
type lifecycleStore[T any] struct{ db *gorm.DB }

func (s lifecycleStore[T]) create(m *T) error { return s.db.Create(m).Error }

// findByID withDeleted=true 时绕过默认 active-only 过滤
func (s lifecycleStore[T]) findByID(id string, withDeleted bool, preloads ...string) (*T, error) {
	q := s.db
	if withDeleted {
		q = q.Unscoped()
	}
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var m T
	err := q.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// update 走默认 scope：软删行不可更新（按 Active 定义）
func (s lifecycleStore[T]) update(m *T) error { return s.db.Save(m).Error }

func (s lifecycleStore[T]) softDelete(id string) error {
	res := s.db.Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s lifecycleStore[T]) restore(id string) error {
	res := s.db.Unscoped().Model(new(T)).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// 区分「不存在」与「存在但未软删」
	var n int64
	if err := s.db.Unscoped().Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrNotDeleted
}

// purge 任何状态均可彻底删除，不可恢复
func (s lifecycleStore[T]) purge(id string) error {
	res := s.db.Unscoped().Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
