package dto

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=3,max=72"`
	Name     string `json:"name" binding:"required,max=100"`
	Surname  string `json:"surname" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	Privilege string `json:"privilege,omitempty"`
}

type PasswordResetRequest struct {
	Username string `json:"username" binding:"required"`
}

type PasswordResetConfirmRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=3,max=72"`
}
