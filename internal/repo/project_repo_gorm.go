package repo

import (
	"gorm.io/gorm"

	"go-rbac-api/internal/domain"
)

type ProjectRepo struct {
	lifecycleStore[domain.Project]
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{lifecycleStore[domain.Project]{db: db}}
}

func (r *ProjectRepo) Create(p *domain.Project) error { return r.create(p) }

func (r *ProjectRepo) FindByID(id string, withDeleted bool) (*domain.Project, error) {
	return r.findByID(id, withDeleted)
}

func (r *ProjectRepo) List(offset, limit int, withDeleted bool) ([]domain.Project, int64, error) {
	tx := r.db.Model(&domain.Project{})
	if withDeleted {
		tx = tx.Unscoped()
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ps []domain.Project
	if err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ps).Error; err != nil {
		return nil, 0, err
	}
	return ps, total, nil
}

func (r *ProjectRepo) Update(p *domain.Project) error { return r.update(p) }
func (r *ProjectRepo) SoftDelete(id string) error     { return r.softDelete(id) }
func (r *ProjectRepo) Restore(id string) error        { return r.restore(id) }
func (r *ProjectRepo) Purge(id string) error          { return r.purge(id) }
