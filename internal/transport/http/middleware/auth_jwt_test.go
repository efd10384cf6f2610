package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-rbac-api/internal/core/auth"
	"go-rbac-api/internal/domain"
)

// stubUserRepo 只实现授权关用到的 FindByID
type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) FindByID(id string, withDeleted bool) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) Create(*domain.User) error { return nil }
func (s *stubUserRepo) FindByEmail(string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
func (s *stubUserRepo) List(domain.UserListQuery) ([]domain.User, int64, error) { return nil, 0, nil }
func (s *stubUserRepo) Update(*domain.User) error                               { return nil }
func (s *stubUserRepo) CountByRoleID(string) (int64, error)                     { return 0, nil }
func (s *stubUserRepo) SoftDelete(string) error                                 { return nil }
func (s *stubUserRepo) Restore(string) error                                    { return nil }
func (s *stubUserRepo) Purge(string) error                                      { return nil }

func userWithRole(id, roleName string) *domain.User {
	u := &domain.User{ID: id, Username: id, Email: id + "@example.com"}
	if roleName != "" {
		rid := "role-" + roleName
		u.RoleID = &rid
		u.Role = &domain.Role{ID: rid, Name: roleName}
	}
	return u
}

func newGateEngine(j *auth.JWTer, users domain.UserRepository, names ...string) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	reached := false
	r := gin.New()
	grp := r.Group("/x", AuthJWT(j))
	if len(names) > 0 {
		grp.Use(RequireRoles(users, names...))
	}
	grp.GET("", func(c *gin.Context) {
		reached = true
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString(KeyUserID)})
	})
	return r, &reached
}

func do(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthJWTMissingToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	r, reached := newGateEngine(j, nil)

	w := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached, "guarded handler must not run")
}

func TestAuthJWTExpiredTokenIs401Not403(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: -time.Minute}
	users := &stubUserRepo{users: map[string]*domain.User{
		"u1": userWithRole("u1", domain.RoleAdmin),
	}}
	// admin-only 路由：过期 token 必须报认证错，不是授权错
	r, reached := newGateEngine(j, users, domain.RoleAdmin)

	tok, err := j.Issue("u1", domain.RoleAdmin)
	require.NoError(t, err)

	w := do(r, tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestAuthenticatedOnlyAdmitsAnyValidToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	r, reached := newGateEngine(j, nil)

	tok, err := j.Issue("u1", "") // 无角色照样通过认证关
	require.NoError(t, err)

	w := do(r, tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *reached)
}

func TestAdminOnlyRejectsNonAdmin(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	users := &stubUserRepo{users: map[string]*domain.User{
		"u1": userWithRole("u1", domain.RoleUser),
		"u2": userWithRole("u2", ""), // 无角色
	}}
	r, reached := newGateEngine(j, users, domain.RoleAdmin)

	for _, uid := range []string{"u1", "u2"} {
		tok, err := j.Issue(uid, domain.RoleUser)
		require.NoError(t, err)
		w := do(r, tok)
		assert.Equal(t, http.StatusForbidden, w.Code, "uid %s", uid)
	}
	assert.False(t, *reached)
}

func TestAdminOrManager(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	users := &stubUserRepo{users: map[string]*domain.User{
		"a": userWithRole("a", domain.RoleAdmin),
		"m": userWithRole("m", domain.RoleManager),
		"u": userWithRole("u", domain.RoleUser),
	}}

	for uid, want := range map[string]int{
		"a": http.StatusOK,
		"m": http.StatusOK,
		"u": http.StatusForbidden,
	} {
		r, _ := newGateEngine(j, users, domain.RoleAdmin, domain.RoleManager)
		tok, err := j.Issue(uid, "")
		require.NoError(t, err)
		w := do(r, tok)
		assert.Equal(t, want, w.Code, "uid %s", uid)
	}
}

func TestRoleResolvedFreshFromStore(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	users := &stubUserRepo{users: map[string]*domain.User{
		"u1": userWithRole("u1", domain.RoleAdmin),
	}}
	r, _ := newGateEngine(j, users, domain.RoleAdmin)

	// claim 里写着 admin，但授权以库里当前角色为准
	tok, err := j.Issue("u1", domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, do(r, tok).Code)

	users.users["u1"] = userWithRole("u1", domain.RoleUser) // 角色被撤
	assert.Equal(t, http.StatusForbidden, do(r, tok).Code)
}

func TestDeletedIdentityIs401(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	users := &stubUserRepo{users: map[string]*domain.User{}}
	r, _ := newGateEngine(j, users, domain.RoleAdmin)

	tok, err := j.Issue("gone", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, tok).Code)
}
