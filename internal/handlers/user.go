package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/geoguess/internal/handlers/dto"
	"github.com/thereayou/geoguess/internal/middleware"
	"github.com/thereayou/geoguess/internal/services"
	"github.com/thereayou/geoguess/internal/storage"
)

const maxAvatarSize = 5 << 20

var avatarExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type UserHandler struct {
	auth  *services.AuthService
	files storage.FileStore
}

func NewUserHandler(auth *services.AuthService, files storage.FileStore) *UserHandler {
	return &UserHandler{auth: auth, files: files}
}

// GetMe возвращает информацию о текущем пользователе
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context(), middleware.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateMe обновляет профиль и возвращает новый токен
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, err := h.auth.EditProfile(c.Request.Context(), middleware.Username(c), services.ProfileInput{
		Username: req.Username,
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.auth.ChangePassword(c.Request.Context(), middleware.Username(c), services.PasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SearchUsers поиск пользователей по username
func (h *UserHandler) SearchUsers(c *gin.Context) {
	users, err := h.auth.SearchUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]dto.UserInfo, len(users))
	for i := range users {
		result[i] = dto.NewUserInfo(&users[i])
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}

// UploadAvatar принимает multipart-поле avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	header, err := c.FormFile("avatar")
	if err != nil {
		badRequest(c, errors.New("avatar file is required"))
		return
	}
	if header.Size > maxAvatarSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "avatar is too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !avatarExtensions[ext] {
		badRequest(c, errors.New("unsupported avatar format"))
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	name := uuid.NewString() + ext
	if err := h.files.Save(ctx, name, file); err != nil {
		respondError(c, err)
		return
	}

	avatar, err := h.auth.UploadAvatar(ctx, middleware.Username(c), name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AvatarResponse{Avatar: avatar})
}

func (h *UserHandler) RemoveAvatar(c *gin.Context) {
	if err := h.auth.RemoveAvatar(c.Request.Context(), middleware.Username(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
