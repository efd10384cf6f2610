package handler

import (
	"github.com/gin-gonic/gin"

	"go-rbac-api/internal/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Create POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var in struct {
		Name        string `json:"name"        binding:"required,max=128"`
		Description string `json:"description" binding:"omitempty,max=512"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(in.Name, in.Description, callerID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, p)
}

// List GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	var in struct {
		Offset      int  `form:"offset,default=0"`
		Limit       int  `form:"limit,default=20"`
		WithDeleted bool `form:"with_deleted"`
	}
	if err := c.ShouldBindQuery(&in); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	ps, total, err := h.svc.List(in.Offset, in.Limit, in.WithDeleted)
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, gin.H{"total": total, "items": ps})
}

// Get GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	withDeleted := c.Query("with_deleted") == "true"
	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), withDeleted)
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, p)
}

// Update PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var in struct {
		Name        *string `json:"name"        binding:"omitempty,max=128"`
		Description *string `json:"description" binding:"omitempty,max=512"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.ProjectUpdate{
		Name:        in.Name,
		Description: in.Description,
	}, callerID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, p)
}

// SoftDelete DELETE /projects/:id
func (h *ProjectHandler) SoftDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.SoftDelete(c.Request.Context(), id, callerID(c)); err != nil {
		writeErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// Restore PATCH /projects/:id/restore
func (h *ProjectHandler) Restore(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Restore(c.Request.Context(), id, callerID(c)); err != nil {
		writeErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// Purge DELETE /projects/:id/purge
func (h *ProjectHandler) Purge(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Purge(c.Request.Context(), id, callerID(c)); err != nil {
		writeErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}
