package dto

import (
	"time"

	"github.com/google/uuid"
)

// GoogleLoginRequest carries either an access token obtained by the frontend
// or an authorization code to exchange server side.
type GoogleLoginRequest struct {
	AccessToken string `json:"accessToken" validate:"required_without=Code"`
	Code        string `json:"code" validate:"required_without=AccessToken"`
}

type UserResponse struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Avatar     string    `json:"avatar"`
	Categories []string  `json:"categories"`
	DailyGoal  string    `json:"dailyGoal"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
