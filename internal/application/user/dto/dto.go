package dto

import (
	"time"

	"github.com/upkeep-inc/upkeep/internal/domain/user"
	"github.com/upkeep-inc/upkeep/internal/shared/mapper"
)

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,max=30"`
	Role     string `json:"role" binding:"omitempty,oneof=Admin Viewer User"`
	Status   string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// UpdateUserRequest replaces a user's profile. An empty password keeps the
// current one.
type UpdateUserRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"omitempty,max=128"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,max=30"`
	Role     string `json:"role" binding:"omitempty,oneof=Admin Viewer User"`
	Status   string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

type ListUsersRequest struct {
	Role     string `form:"role" binding:"omitempty,oneof=Admin Viewer User"`
	Status   string `form:"status" binding:"omitempty,oneof=Active Inactive"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse never carries the password.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListUsersResponse struct {
	Users    []*UserResponse `json:"users"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type LoginResponse struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func FromUser(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		Phone:     u.Phone(),
		Role:      u.Role().String(),
		Status:    u.Status().String(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func FromUsers(us []*user.User) []*UserResponse {
	return mapper.MapSlice(us, FromUser)
}
