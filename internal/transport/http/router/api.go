package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-rbac-api/internal/core/auth"
	"go-rbac-api/internal/domain"
	"go-rbac-api/internal/transport/http/handler"
	mdw "go-rbac-api/internal/transport/http/middleware"
)

type Deps struct {
	Log     *zap.Logger
	JWTer   *auth.JWTer
	Users   domain.UserRepository // 授权关每次重查角色用
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Project *handler.ProjectHandler
	Audit   *handler.AuditHandler
}

// NewAPIEngine 路由 → 能力（capability）对照见各分组
func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		cors.Default(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 鉴权能力三档
	authed := mdw.AuthJWT(d.JWTer)
	adminOnly := mdw.RequireRoles(d.Users, domain.RoleAdmin)
	adminOrManager := mdw.RequireRoles(d.Users, domain.RoleAdmin, domain.RoleManager)

	// 公开：注册首个 admin（内部闸门）、登录
	api.POST("/auth/signup", d.Auth.Signup)
	api.POST("/auth/login", d.Auth.Login)

	users := api.Group("/users", authed)
	{
		users.POST("", adminOnly, d.Auth.Register)
		users.GET("", adminOrManager, d.User.List)
		users.GET("/:id", d.User.Get) // 任意已认证用户
		users.PUT("/:id", adminOnly, d.User.Update)
		users.DELETE("/:id", adminOnly, d.User.SoftDelete)
		users.PATCH("/:id/restore", adminOnly, d.User.Restore)
		users.DELETE("/:id/purge", adminOnly, d.User.Purge)
		users.POST("/:id/assign-role", adminOnly, d.User.AssignRole)
		users.POST("/:id/revoke-role", adminOnly, d.User.RevokeRole)
	}

	projects := api.Group("/projects", authed)
	{
		projects.POST("", adminOnly, d.Project.Create)
		projects.GET("", d.Project.List)
		projects.GET("/:id", d.Project.Get)
		projects.PUT("/:id", adminOnly, d.Project.Update)
		projects.DELETE("/:id", adminOnly, d.Project.SoftDelete)
		projects.PATCH("/:id/restore", adminOnly, d.Project.Restore)
		projects.DELETE("/:id/purge", adminOnly, d.Project.Purge)
	}

	api.GET("/audit-logs", authed, adminOnly, d.Audit.List)

	return r
}
