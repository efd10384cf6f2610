package handler

import (
	"github.com/gin-gonic/gin"

	"go-rbac-api/internal/domain"
)

type AuditHandler struct {
	logs domain.AuditLogRepository
}

func NewAuditHandler(logs domain.AuditLogRepository) *AuditHandler {
	return &AuditHandler{logs: logs}
}

// List GET /audit-logs —— 仅 admin；只读，没有任何改写口子
func (h *AuditHandler) List(c *gin.Context) {
	var in struct {
		Offset int `form:"offset,default=0"`
		Limit  int `form:"limit,default=50"`
	}
	if err := c.ShouldBindQuery(&in); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	if in.Limit <= 0 || in.Limit > 200 {
		in.Limit = 50
	}
	logs, total, err := h.logs.List(in.Offset, in.Limit)
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, gin.H{"total": total, "items": logs})
}
