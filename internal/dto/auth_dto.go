package dto

import (
	"time"

	"jobtrackr/internal/entity"
	"jobtrackr/internal/service"
)

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,e164"`
	FirstName string `json:"first_name" validate:"omitempty,max=30"`
	LastName  string `json:"last_name" validate:"omitempty,max=30"`
	Password  string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type RefreshResponse struct {
	Access    string `json:"access"`
	ExpiresIn int64  `json:"expires_in"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenPairResponse struct {
	Access           string `json:"access"`
	Refresh          string `json:"refresh"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
}

type AuthResponse struct {
	User   UserResponse      `json:"user"`
	Tokens TokenPairResponse `json:"tokens"`
}

type UserResponse struct {
	ID         string              `json:"id"`
	Username   string              `json:"username"`
	Email      string              `json:"email"`
	Phone      string              `json:"phone"`
	FirstName  string              `json:"first_name"`
	LastName   string              `json:"last_name"`
	Role       string              `json:"role"`
	IsActive   bool                `json:"is_active"`
	DateJoined time.Time           `json:"date_joined"`
	Profile    *ProfileResponse    `json:"profile,omitempty"`
	SocialLink *SocialLinkResponse `json:"social_links,omitempty"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	response := UserResponse{
		ID:         user.ID.String(),
		Username:   user.Username,
		Email:      user.Email,
		Phone:      user.Phone,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       string(user.Role),
		IsActive:   user.IsActive,
		DateJoined: user.CreatedAt,
	}
	if user.Profile != nil {
		profile := ProfileResponseFromEntity(user.Profile)
		response.Profile = &profile
	}
	if user.SocialLinks != nil {
		links := SocialLinkResponseFromEntity(user.SocialLinks)
		response.SocialLink = &links
	}
	return response
}

func UserResponsesFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserResponseFromEntity(&users[i]))
	}
	return responses
}

func AuthResponseFrom(user *entity.User, pair *service.TokenPair) AuthResponse {
	return AuthResponse{
		User: UserResponseFromEntity(user),
		Tokens: TokenPairResponse{
			Access:           pair.AccessToken,
			Refresh:          pair.RefreshToken,
			ExpiresIn:        pair.ExpiresIn,
			RefreshExpiresIn: pair.RefreshExpiresIn,
		},
	}
}
