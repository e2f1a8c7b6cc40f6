package resource

import (
	"context"
	"net/http"

	"repairs/internal/dto"
)

// Auth covers the account flows. Only Logout and ChangePassword act on
// behalf of a signed-in user.
type Auth struct {
	r Requester
}

func NewAuth(r Requester) *Auth { return &Auth{r: r} }

func (a *Auth) Login(ctx context.Context, payload dto.LoginRequest) Result[dto.LoginResponse] {
	return send[dto.LoginResponse](ctx, a.r, http.MethodPost, "/auth/login", payload, "")
}

// Refresh trades a refresh token for a new token pair.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) Result[dto.TokenPair] {
	return send[dto.TokenPair](ctx, a.r, http.MethodPost, "/auth/refresh", dto.RefreshRequest{RefreshToken: refreshToken}, "")
}

func (a *Auth) Logout(ctx context.Context, token string) Result[dto.MessageResponse] {
	return call[dto.MessageResponse](ctx, a.r, http.MethodPost, "/auth/logout", nil, token)
}

// AcceptInvite registers the invited user and signs them in.
func (a *Auth) AcceptInvite(ctx context.Context, payload dto.AcceptInviteRequest) Result[dto.LoginResponse] {
	return send[dto.LoginResponse](ctx, a.r, http.MethodPost, "/auth/accept-invite", payload, "")
}

func (a *Auth) ForgotPassword(ctx context.Context, payload dto.ForgotPasswordRequest) Result[dto.MessageResponse] {
	return send[dto.MessageResponse](ctx, a.r, http.MethodPost, "/auth/forgot-password", payload, "")
}

func (a *Auth) ResetPassword(ctx context.Context, payload dto.ResetPasswordRequest) Result[dto.MessageResponse] {
	return send[dto.MessageResponse](ctx, a.r, http.MethodPost, "/auth/reset-password", payload, "")
}

func (a *Auth) ChangePassword(ctx context.Context, payload dto.ChangePasswordRequest, token string) Result[dto.MessageResponse] {
	return send[dto.MessageResponse](ctx, a.r, http.MethodPost, "/auth/change-password", payload, token)
}
