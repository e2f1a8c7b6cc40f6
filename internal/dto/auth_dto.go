package dto

import "repairs/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token"           validate:"required"`
	Password        string `json:"password"        validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,nefield=CurrentPassword"`
}

// AcceptInviteRequest completes registration from an invite link.
type AcceptInviteRequest struct {
	Token           string `json:"token"           validate:"required"`
	Name            string `json:"name"            validate:"required,min=2,max=100"`
	PhoneNumber     string `json:"phoneNumber"     validate:"omitempty,min=7,max=20"`
	Password        string `json:"password"        validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         model.User  `json:"user"`
	Role         *model.Role `json:"role,omitempty"`
}

// ResolvedRole prefers the explicit role and falls back to the one embedded
// in the user.
func (r LoginResponse) ResolvedRole() *model.Role {
	if r.Role != nil {
		return r.Role
	}
	return r.User.Role.Value
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type InviteVerification struct {
	Valid   bool                     `json:"valid"`
	Email   string                   `json:"email"`
	Role    model.Ref[model.Role]    `json:"role"`
	Company model.Ref[model.Company] `json:"company"`
}
