package handler

import (
	"net/http"
	"time"

	"repairs/internal/apierror"
	"repairs/internal/dto"
	"repairs/internal/model"
	"repairs/internal/resource"
	"repairs/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SessionView is what the UI sees of the session. Tokens never leave the
// console.
type SessionView struct {
	IsAuthenticated bool        `json:"isAuthenticated"`
	User            *model.User `json:"user"`
	Role            *model.Role `json:"role"`
	ExpiresAt       *time.Time  `json:"expiresAt,omitempty"`
}

type AuthHandler struct {
	auth  *resource.Auth
	store *session.Store
}

func NewAuthHandler(auth *resource.Auth, store *session.Store) *AuthHandler {
	return &AuthHandler{auth: auth, store: store}
}

// Login godoc
// @Summary Sign in against the remote API
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} SessionView
// @Failure 401 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Failure 502 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res := h.auth.Login(c.Request.Context(), req)
	if !res.Success {
		authFailure(c, res.Rejected(), res.Error)
		return
	}
	h.signIn(c, res.Data)
}

// AcceptInvite registers from an invite link and signs the new user in.
func (h *AuthHandler) AcceptInvite(c *gin.Context) {
	var req dto.AcceptInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.AcceptInvite(c.Request.Context(), req).Unwrap()
	if err != nil {
		upstreamFailure(c, err)
		return
	}
	h.signIn(c, resp)
}

func (h *AuthHandler) signIn(c *gin.Context, resp dto.LoginResponse) {
	user := resp.User
	if err := h.store.SetAuthenticated(c.Request.Context(), resp.AccessToken, resp.RefreshToken, &user, resp.ResolvedRole()); err != nil {
		// The in-memory session is already updated; only durability is lost.
		log.Warn().Err(err).Str("store", h.store.Backend()).Msg("auth: session not persisted")
	}
	log.Info().Str("user", user.Email).Msg("auth: signed in")
	c.JSON(http.StatusOK, h.view())
}

// Refresh exchanges the stored refresh token for a new pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh := h.store.RefreshToken()
	if refresh == "" {
		c.JSON(http.StatusUnauthorized, apierror.New("No refresh token, sign in again"))
		return
	}
	res := h.auth.Refresh(c.Request.Context(), refresh)
	if !res.Success {
		authFailure(c, res.Rejected(), res.Error)
		return
	}
	pair := res.Data
	if err := h.store.SetUpdatedTokens(c.Request.Context(), pair.AccessToken, pair.RefreshToken); err != nil {
		log.Warn().Err(err).Str("store", h.store.Backend()).Msg("auth: refreshed tokens not persisted")
	}
	c.JSON(http.StatusOK, h.view())
}

// Logout tells the server first and clears the local session whatever it
// answers.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.store.AccessToken(); token != "" {
		if res := h.auth.Logout(c.Request.Context(), token); !res.Success {
			log.Warn().Str("error", res.Error).Msg("auth: remote logout failed")
		}
	}
	if err := h.store.Reset(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("auth: session reset failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Could not clear the session"))
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Signed out"})
}

func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, h.view())
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.auth.ForgotPassword(c.Request.Context(), req))
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.auth.ResetPassword(c.Request.Context(), req))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.auth.ChangePassword(c.Request.Context(), req, h.store.AccessToken()))
}

func (h *AuthHandler) view() SessionView {
	st := h.store.Snapshot()
	v := SessionView{IsAuthenticated: st.IsAuthenticated, User: st.User, Role: st.Role}
	if exp, ok := session.TokenExpiry(st.AccessToken); ok {
		v.ExpiresAt = &exp
	}
	return v
}

// authFailure answers 401 when the server turned the credentials down and 502
// when it could not be asked at all.
func authFailure(c *gin.Context, rejected bool, msg string) {
	if rejected {
		c.JSON(http.StatusUnauthorized, apierror.New(msg))
		return
	}
	c.JSON(http.StatusBadGateway, apierror.New(msg))
}
