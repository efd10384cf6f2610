package handler

import (
	"github.com/gin-gonic/gin"

	"go-rbac-api/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Signup POST /auth/signup —— 公开口子，仅在尚无 admin 时放行
func (h *AuthHandler) Signup(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required,max=64"`
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Signup(in.Username, in.Email, in.Password)
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, u)
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	tok, u, err := h.svc.Login(in.Email, in.Password)
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, gin.H{"token": tok, "user": u})
}

// Register POST /users —— admin 建号，角色名显式给定
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required,max=64"`
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role"     binding:"omitempty,max=32"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Register(in.Username, in.Email, in.Password, in.Role, callerID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	ok(c, u)
}
