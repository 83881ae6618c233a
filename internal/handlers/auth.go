package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/geoguess/internal/handlers/dto"
	"github.com/thereayou/geoguess/internal/middleware"
	"github.com/thereayou/geoguess/internal/services"
)

// ResetMailer доставляет токен сброса владельцу почты
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

type AuthHandler struct {
	auth   *services.AuthService
	mailer ResetMailer
}

func NewAuthHandler(auth *services.AuthService, mailer ResetMailer) *AuthHandler {
	return &AuthHandler{auth: auth, mailer: mailer}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user registered"})
}

// Login выдаёт JWT; для суперпользователя добавляется privilege
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: res.Token, Privilege: res.Privilege})
}

// RequestPasswordReset отправляет токен на почту; в ответе токена нет
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	res, err := h.auth.RequestPasswordReset(ctx, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.mailer.SendPasswordReset(ctx, res.Email, res.Token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "reset instructions sent"})
}

// ConfirmPasswordReset задаёт новый пароль; доступен только с токеном сброса
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), middleware.Username(c), req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
