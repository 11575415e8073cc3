package dto

import (
	"time"

	"devconnector/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, CreatedAt: u.CreatedAt}
}

type TokenResponse struct {
	Token string `json:"token"`
}
