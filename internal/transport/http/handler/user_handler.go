package handler

import (
	"github.com/gin-gonic/gin"

	"go-rbac-api/internal/domain"
	"go-rbac-api/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

// List GET /users
func (h *UserHandler) List(c *gin.Context) {
	var in struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`
		WithDeleted bool   `form:"with_deleted"`
	}
	if err := c.ShouldBindQuery(&in); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	users, total, err := h.svc.List(domain.UserListQuery{
		Offset:      in.Offset,
		Limit:       in.Limit,
		Q:           in.Q,
		WithDeleted: in.WithDeleted,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, gin.H{"total": total, "items": users})
}

// Get GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	withDeleted := c.Query("with_deleted") == "true"
	u, err := h.svc.GetByID(c.Param("id"), withDeleted)
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, u)
}

// Update PUT /users/:id —— 给了哪个字段改哪个
func (h *UserHandler) Update(c *gin.Context) {
	var in struct {
		Username *string `json:"username" binding:"omitempty,max=64"`
		Email    *string `json:"email"    binding:"omitempty,email"`
		Password *string `json:"password" binding:"omitempty,min=6"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Update(c.Param("id"), service.UserUpdate{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	}, callerID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, u)
}

// SoftDelete DELETE /users/:id
func (h *UserHandler) SoftDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.SoftDelete(id, callerID(c)); err != nil {
		writeErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// Restore PATCH /users/:id/restore
func (h *UserHandler) Restore(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Restore(id, callerID(c)); err != nil {
		writeErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// Purge DELETE /users/:id/purge —— 不可恢复
func (h *UserHandler) Purge(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Purge(id, callerID(c)); err != nil {
		writeErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// AssignRole POST /users/:id/assign-role
func (h *UserHandler) AssignRole(c *gin.Context) {
	var in struct {
		RoleID string `json:"roleId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	u, err := h.svc.AssignRole(c.Param("id"), in.RoleID, callerID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, u)
}

// RevokeRole POST /users/:id/revoke-role
func (h *UserHandler) RevokeRole(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.RevokeRole(id, callerID(c)); err != nil {
		writeErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}
