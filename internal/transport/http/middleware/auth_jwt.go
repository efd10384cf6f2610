package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"go-rbac-api/internal/core/auth"
	"go-rbac-api/internal/domain"
	resp "go-rbac-api/internal/transport/http/response"
)

const (
	KeyUserID   = "userId"
	KeyClaims   = "claims"
	KeyRoleName = "roleName"
)

// AuthJWT 认证关：缺失/伪造/过期 token 一律 401。
// 通过后把 claim 快照挂到请求上下文。
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeUnauthorized), resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeUnauthorized), resp.Error(resp.CodeUnauthorized, "invalid or expired token"))
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UID)
		c.Next()
	}
}

// RequireRoles 授权关：角色每次从库里重查（claim 只是签发时的快照），
// 改角色立即生效，不等旧 token 过期。403 与认证失败的 401 严格区分。
func RequireRoles(users domain.UserRepository, names ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowed[domain.NormalizeRole(n)] = struct{}{}
	}
	return func(c *gin.Context) {
		uid := c.GetString(KeyUserID)
		if uid == "" {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeUnauthorized), resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		u, err := users.FindByID(uid, false)
		if errors.Is(err, domain.ErrNotFound) {
			// 账号已删或不存在：token 主体失效
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeUnauthorized), resp.Error(resp.CodeUnauthorized, "unknown identity"))
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeServerError), resp.Error(resp.CodeServerError, "load identity failed"))
			return
		}

		role := domain.NormalizeRole(u.RoleName())
		if role == "" {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeForbidden), resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeForbidden), resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(KeyRoleName, role)
		c.Next()
	}
}
