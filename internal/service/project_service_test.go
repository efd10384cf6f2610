package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-rbac-api/internal/audit"
	"go-rbac-api/internal/domain"
)

func newProjectFixture(t *testing.T) (*ProjectService, *fakeProjectRepo, *audit.Recorder, *fakeAuditRepo) {
	t.Helper()
	projects := newFakeProjectRepo()
	logs := &fakeAuditRepo{}
	rec := audit.NewRecorder(logs, zap.NewNop())
	// cache=nil：单测直读仓储
	return NewProjectService(projects, nil, rec), projects, rec, logs
}

func TestProjectCreateAndGet(t *testing.T) {
	svc, _, _, _ := newProjectFixture(t)
	ctx := context.Background()

	p, err := svc.Create("apollo", "first project", "admin-id")
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)

	got, err := svc.GetByID(ctx, p.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "apollo", got.Name)
	assert.Equal(t, "first project", got.Description)
}

func TestProjectLifecycle(t *testing.T) {
	svc, _, _, _ := newProjectFixture(t)
	ctx := context.Background()

	p, err := svc.Create("apollo", "d", "admin-id")
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, p.ID, "admin-id"))
	_, err = svc.GetByID(ctx, p.ID, false)
	require.ErrorIs(t, err, domain.ErrNotFound)
	got, err := svc.GetByID(ctx, p.ID, true)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	// restore 后回到默认列表
	require.NoError(t, svc.Restore(ctx, p.ID, "admin-id"))
	list, total, err := svc.List(0, 20, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, p.Name, list[0].Name)

	// 再 restore：已 Active，状态非法
	require.ErrorIs(t, svc.Restore(ctx, p.ID, "admin-id"), domain.ErrNotDeleted)

	require.NoError(t, svc.Purge(ctx, p.ID, "admin-id"))
	_, err = svc.GetByID(ctx, p.ID, true)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectUpdatePartial(t *testing.T) {
	svc, _, _, _ := newProjectFixture(t)
	ctx := context.Background()

	p, err := svc.Create("apollo", "old desc", "admin-id")
	require.NoError(t, err)

	desc := "new desc"
	got, err := svc.Update(ctx, p.ID, ProjectUpdate{Description: &desc}, "admin-id")
	require.NoError(t, err)
	assert.Equal(t, "apollo", got.Name, "omitted field keeps prior value")
	assert.Equal(t, desc, got.Description)
}

func TestProjectUpdateSoftDeletedForbidden(t *testing.T) {
	svc, _, _, _ := newProjectFixture(t)
	ctx := context.Background()

	p, err := svc.Create("apollo", "d", "admin-id")
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(ctx, p.ID, "admin-id"))

	name := "zeus"
	_, err = svc.Update(ctx, p.ID, ProjectUpdate{Name: &name}, "admin-id")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectMutationsAudited(t *testing.T) {
	svc, _, rec, logs := newProjectFixture(t)
	ctx := context.Background()

	p, err := svc.Create("apollo", "d", "admin-id")
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(ctx, p.ID, "admin-id"))
	rec.Wait()

	actions := logs.actions()
	assert.Contains(t, actions, "project.create")
	assert.Contains(t, actions, "project.soft_delete")
}
