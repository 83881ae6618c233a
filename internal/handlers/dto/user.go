package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/geoguess/internal/models"
)

type EditProfileRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Name     string `json:"name" binding:"required,max=100"`
	Surname  string `json:"surname" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
}

// ChangePasswordRequest currentPassword можно не передавать
type ChangePasswordRequest struct {
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     string  `json:"newPassword" binding:"required,min=3,max=72"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Surname:   u.Surname,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// UserInfo краткая карточка для поиска и журнала действий
type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Avatar   *string   `json:"avatar,omitempty"`
}

func NewUserInfo(u *models.User) UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}
