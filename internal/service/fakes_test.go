package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"go-rbac-api/internal/domain"
	"go-rbac-api/pkg/utils"
)

// 内存版仓储，语义对齐 gorm 实现（默认 scope 过滤软删行）。

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func isDeleted(d gorm.DeletedAt) bool { return d.Valid }

func (r *fakeUserRepo) Create(u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.users {
		if ex.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id string, withDeleted bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || (!withDeleted && isDeleted(u.DeletedAt)) {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && !isDeleted(u.DeletedAt) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) List(q domain.UserListQuery) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if !q.WithDeleted && isDeleted(u.DeletedAt) {
			continue
		}
		if s := strings.TrimSpace(q.Q); s != "" &&
			!strings.Contains(u.Email, s) && !strings.Contains(u.Username, s) {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Update(u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) CountByRoleID(roleID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if !isDeleted(u.DeletedAt) && u.RoleID != nil && *u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) SoftDelete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || isDeleted(u.DeletedAt) {
		return domain.ErrNotFound
	}
	u.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return nil
}

func (r *fakeUserRepo) Restore(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !isDeleted(u.DeletedAt) {
		return domain.ErrNotDeleted
	}
	u.DeletedAt = gorm.DeletedAt{}
	return nil
}

func (r *fakeUserRepo) Purge(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeRoleRepo struct {
	mu    sync.Mutex
	roles map[string]*domain.Role // by id
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]*domain.Role{}}
}

func (r *fakeRoleRepo) Resolve(name string) (*domain.Role, error) {
	name = domain.NormalizeRole(name)
	if name == "" {
		return nil, domain.ErrRoleNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if role.Name == name {
			cp := *role
			return &cp, nil
		}
	}
	role := &domain.Role{ID: utils.NewID(), Name: name}
	r.roles[role.ID] = role
	cp := *role
	return &cp, nil
}

func (r *fakeRoleRepo) FindByID(id string) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	cp := *role
	return &cp, nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*domain.Project{}}
}

func (r *fakeProjectRepo) Create(p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) FindByID(id string, withDeleted bool) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || (!withDeleted && isDeleted(p.DeletedAt)) {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) List(offset, limit int, withDeleted bool) ([]domain.Project, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Project
	for _, p := range r.projects {
		if !withDeleted && isDeleted(p.DeletedAt) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProjectRepo) Update(p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) SoftDelete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || isDeleted(p.DeletedAt) {
		return domain.ErrNotFound
	}
	p.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return nil
}

func (r *fakeProjectRepo) Restore(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !isDeleted(p.DeletedAt) {
		return domain.ErrNotDeleted
	}
	p.DeletedAt = gorm.DeletedAt{}
	return nil
}

func (r *fakeProjectRepo) Purge(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditLog
	failErr error // 非 nil 时模拟写失败
}

func (r *fakeAuditRepo) Append(e *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeAuditRepo) List(offset, limit int) ([]domain.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]domain.AuditLog(nil), r.entries...)
	return out, int64(len(out)), nil
}

func (r *fakeAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

var errStoreDown = errors.New("store down")
