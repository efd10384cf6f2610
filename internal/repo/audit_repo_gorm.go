package repo

import (
	"gorm.io/gorm"

	"go-rbac-api/internal/domain"
)

type AuditLogRepo struct{ db *gorm.DB }

func NewAuditLogRepo(db *gorm.DB) *AuditLogRepo { return &AuditLogRepo{db: db} }

func (r *AuditLogRepo) Append(e *domain.AuditLog) error {
	return r.db.Create(e).Error
}

func (r *AuditLogRepo) List(offset, limit int) ([]domain.AuditLog, int64, error) {
	tx := r.db.Model(&domain.AuditLog{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []domain.AuditLog
	if err := tx.Order("performed_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
