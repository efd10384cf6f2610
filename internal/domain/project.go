package domain

import (
	"time"

	"gorm.io/gorm"
)

// Project 仅按角色授权访问，不挂 owner
type Project struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"size:128;not null" json:"name"`
	Description string `gorm:"size:512" json:"description"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }

type ProjectRepository interface {
	Create(p *Project) error
	FindByID(id string, withDeleted bool) (*Project, error)
	List(offset, limit int, withDeleted bool) ([]Project, int64, error)
	Update(p *Project) error
	SoftDelete(id string) error
	Restore(id string) error
	Purge(id string) error
}
