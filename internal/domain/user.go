package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	Username     string  `gorm:"size:64;not null" json:"username"`
	Email        string  `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string  `gorm:"size:100;not null" json:"-"`
	RoleID       *string `gorm:"size:36;index" json:"roleId"` // nil = 无任何特权
	Role         *Role   `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// RoleName 返回已预加载的角色名；无角色返回 ""
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

type UserListQuery struct {
	Offset      int
	Limit       int
	Q           string // email/username 模糊搜
	WithDeleted bool   // 是否包含软删
}

type UserRepository interface {
	Create(u *User) error
	FindByID(id string, withDeleted bool) (*User, error)
	FindByEmail(email string) (*User, error)
	List(q UserListQuery) ([]User, int64, error)
	Update(u *User) error
	CountByRoleID(roleID string) (int64, error)
	SoftDelete(id string) error
	Restore(id string) error
	Purge(id string) error
}
