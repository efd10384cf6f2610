package service

import (
	"context"
	"time"

	"go-rbac-api/internal/audit"
	"go-rbac-api/internal/core/cache"
	"go-rbac-api/internal/domain"
	"go-rbac-api/pkg/utils"
)

const projectCacheTTL = 30 * time.Second

type ProjectService struct {
	projects domain.ProjectRepository
	cache    *cache.Cache // 可为 nil（未开 redis 时直读库）
	recorder *audit.Recorder
}

func NewProjectService(projects domain.ProjectRepository, c *cache.Cache, recorder *audit.Recorder) *ProjectService {
	return &ProjectService{projects: projects, cache: c, recorder: recorder}
}

func (s *ProjectService) Create(name, description, performedBy string) (*domain.Project, error) {
	p := &domain.Project{
		ID:          utils.NewID(),
		Name:        name,
		Description: description,
	}
	if err := s.projects.Create(p); err != nil {
		return nil, err
	}
	s.recorder.Record("project.create", performedBy, "project:"+p.ID)
	return p, nil
}

func (s *ProjectService) List(offset, limit int, withDeleted bool) ([]domain.Project, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.projects.List(offset, limit, withDeleted)
}

// GetByID 默认视图走 redis 读穿缓存；deleted 视图始终直读库
func (s *ProjectService) GetByID(ctx context.Context, id string, withDeleted bool) (*domain.Project, error) {
	if s.cache == nil || withDeleted {
		return s.projects.FindByID(id, withDeleted)
	}
	return cache.GetOrLoadJSON[domain.Project](s.cache, ctx, projectKey(id), projectCacheTTL,
		func(context.Context) (*domain.Project, error) {
			return s.projects.FindByID(id, false)
		})
}

// ProjectUpdate 部分更新：nil 字段保持原值
type ProjectUpdate struct {
	Name        *string
	Description *string
}

func (s *ProjectService) Update(ctx context.Context, id string, in ProjectUpdate, performedBy string) (*domain.Project, error) {
	p, err := s.projects.FindByID(id, false)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if err := s.projects.Update(p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	s.recorder.Record("project.update", performedBy, "project:"+id)
	return p, nil
}

func (s *ProjectService) SoftDelete(ctx context.Context, id, performedBy string) error {
	if err := s.projects.SoftDelete(id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.recorder.Record("project.soft_delete", performedBy, "project:"+id)
	return nil
}

func (s *ProjectService) Restore(ctx context.Context, id, performedBy string) error {
	if err := s.projects.Restore(id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.recorder.Record("project.restore", performedBy, "project:"+id)
	return nil
}

func (s *ProjectService) Purge(ctx context.Context, id, performedBy string) error {
	if err := s.projects.Purge(id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.recorder.Record("project.purge", performedBy, "project:"+id)
	return nil
}

func (s *ProjectService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, projectKey(id))
	}
}

func projectKey(id string) string { return "project:" + id }
