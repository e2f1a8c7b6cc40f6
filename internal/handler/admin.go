package handler

import (
	"net/http"

	"repairs/internal/dto"
	"repairs/internal/resource"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves roles, invites, the signed-in user's profile and the
// company profile.
type AdminHandler struct {
	roles   *resource.Roles
	invites *resource.Invites
	users   *resource.Users
	company *resource.Company
	tokens  TokenSource
}

func NewAdminHandler(set *resource.Set, tokens TokenSource) *AdminHandler {
	return &AdminHandler{
		roles:   set.Roles,
		invites: set.Invites,
		users:   set.Users,
		company: set.Company,
		tokens:  tokens,
	}
}

func (h *AdminHandler) Permissions(c *gin.Context) {
	respond(c, http.StatusOK, h.roles.Permissions(c.Request.Context(), h.tokens.AccessToken()))
}

func (h *AdminHandler) Me(c *gin.Context) {
	respond(c, http.StatusOK, h.users.Me(c.Request.Context(), h.tokens.AccessToken()))
}

func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.users.UpdateProfile(c.Request.Context(), req, h.tokens.AccessToken()))
}

// ── Invites ──────────────────────────────────────────────────────────────────

func (h *AdminHandler) ListInvites(c *gin.Context) {
	rows, err := h.invites.GetAll(c.Request.Context(), h.tokens.AccessToken()).Unwrap()
	if err != nil {
		upstreamFailure(c, err)
		return
	}
	writePage(c, rows)
}

func (h *AdminHandler) GetInvite(c *gin.Context) {
	respond(c, http.StatusOK, h.invites.GetByID(c.Request.Context(), c.Param("id"), h.tokens.AccessToken()))
}

func (h *AdminHandler) CreateInvite(c *gin.Context) {
	var req dto.InviteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusCreated, h.invites.Create(c.Request.Context(), req, h.tokens.AccessToken()))
}

func (h *AdminHandler) ResendInvite(c *gin.Context) {
	respond(c, http.StatusOK, h.invites.Resend(c.Request.Context(), c.Param("id"), h.tokens.AccessToken()))
}

func (h *AdminHandler) DeleteInvite(c *gin.Context) {
	respond(c, http.StatusOK, h.invites.Delete(c.Request.Context(), c.Param("id"), h.tokens.AccessToken()))
}

// VerifyInvite is public: the invitee has no session yet.
func (h *AdminHandler) VerifyInvite(c *gin.Context) {
	respond(c, http.StatusOK, h.invites.Verify(c.Request.Context(), c.Param("token")))
}

// ── Company ──────────────────────────────────────────────────────────────────

func (h *AdminHandler) GetCompany(c *gin.Context) {
	respond(c, http.StatusOK, h.company.Get(c.Request.Context(), h.tokens.AccessToken()))
}

func (h *AdminHandler) UpdateCompany(c *gin.Context) {
	var req dto.CompanyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.company.Update(c.Request.Context(), req, h.tokens.AccessToken()))
}
