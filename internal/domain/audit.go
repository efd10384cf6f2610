package domain

import "time"

// AuditLog 只追加，不更新不删除
type AuditLog struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Action         string    `gorm:"size:128;not null" json:"action"`
	PerformedBy    string    `gorm:"size:36;not null;index" json:"performedBy"`
	PerformedAt    time.Time `gorm:"not null" json:"performedAt"`
	TargetResource string    `gorm:"size:191;not null" json:"targetResource"`
}

func (AuditLog) TableName() string { return "audit_logs" }

type AuditLogRepository interface {
	Append(e *AuditLog) error
	List(offset, limit int) ([]AuditLog, int64, error)
}
