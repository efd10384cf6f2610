package domain

import (
	"strings"
	"time"
)

// 固定角色词表；admin 之上不再分层
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

type Role struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:32;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Role) TableName() string { return "roles" }

// NormalizeRole 角色名统一小写比较/存储，避免 "Admin" vs "admin" 两套写法
func NormalizeRole(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type RoleRepository interface {
	// Resolve 按名字查角色，不存在则创建（幂等 upsert）
	Resolve(name string) (*Role, error)
	FindByID(id string) (*Role, error)
}
