package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"go-rbac-api/internal/domain"
	mdw "go-rbac-api/internal/transport/http/middleware"
	resp "go-rbac-api/internal/transport/http/response"
)

// writeErr 统一错误出口：领域错误映射业务码，其余一律 500
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrRoleNotFound):
		c.JSON(resp.HTTPStatus(resp.CodeNotFound), resp.Error(resp.CodeNotFound, err.Error()))
	case errors.Is(err, domain.ErrNotDeleted):
		c.JSON(resp.HTTPStatus(resp.CodeBadRequest), resp.Error(resp.CodeBadRequest, err.Error()))
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrAdminExists):
		c.JSON(resp.HTTPStatus(resp.CodeConflict), resp.Error(resp.CodeConflict, err.Error()))
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(resp.HTTPStatus(resp.CodeUnauthorized), resp.Error(resp.CodeUnauthorized, err.Error()))
	default:
		c.JSON(resp.HTTPStatus(resp.CodeServerError), resp.Error(resp.CodeServerError, ""))
	}
}

func writeBadRequest(c *gin.Context, msg string) {
	c.JSON(resp.HTTPStatus(resp.CodeBadRequest), resp.Error(resp.CodeBadRequest, msg))
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(resp.HTTPStatus(resp.CodeOK), resp.OK(data))
}

// callerID 审计归属：AuthJWT 通过后必有
func callerID(c *gin.Context) string { return c.GetString(mdw.KeyUserID) }
