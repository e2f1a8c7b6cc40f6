package resource

import (
	"context"
	"encoding/json"
	"net/http"

	"repairs/internal/dto"
	"repairs/internal/model"
)

type Clients struct {
	*Crud[model.Client, dto.ClientRequest, dto.ClientRequest]
}

func NewClients(r Requester) *Clients {
	return &Clients{NewCrud[model.Client, dto.ClientRequest, dto.ClientRequest](r, "/clients")}
}

type Contractors struct {
	*Crud[model.Contractor, dto.ContractorRequest, dto.ContractorRequest]
}

func NewContractors(r Requester) *Contractors {
	return &Contractors{NewCrud[model.Contractor, dto.ContractorRequest, dto.ContractorRequest](r, "/contractors")}
}

type Users struct {
	*Crud[model.User, dto.UserRequest, dto.UserRequest]
}

func NewUsers(r Requester) *Users {
	return &Users{NewCrud[model.User, dto.UserRequest, dto.UserRequest](r, "/users")}
}

// Me returns the account the token belongs to.
func (u *Users) Me(ctx context.Context, token string) Result[model.User] {
	return call[model.User](ctx, u.r, http.MethodGet, "/users/me", nil, token)
}

func (u *Users) UpdateProfile(ctx context.Context, payload dto.ProfileRequest, token string) Result[model.User] {
	return send[model.User](ctx, u.r, http.MethodPut, "/users/me", payload, token)
}

type Roles struct {
	*Crud[model.Role, dto.RoleRequest, dto.RoleRequest]
}

func NewRoles(r Requester) *Roles {
	return &Roles{NewCrud[model.Role, dto.RoleRequest, dto.RoleRequest](r, "/roles")}
}

// Permissions lists every permission a role can be granted.
func (rl *Roles) Permissions(ctx context.Context, token string) Result[[]model.Permission] {
	return call[[]model.Permission](ctx, rl.r, http.MethodGet, "/permissions", nil, token)
}

// Invites cannot be updated; an invite is either resent or deleted.
type Invites struct {
	crud *Crud[model.Invite, dto.InviteRequest, dto.InviteRequest]
}

func NewInvites(r Requester) *Invites {
	return &Invites{crud: NewCrud[model.Invite, dto.InviteRequest, dto.InviteRequest](r, "/invites")}
}

func (i *Invites) Path() string { return i.crud.Path() }

func (i *Invites) GetAll(ctx context.Context, token string) Result[[]model.Invite] {
	return i.crud.GetAll(ctx, token)
}

func (i *Invites) GetByID(ctx context.Context, id, token string) Result[model.Invite] {
	return i.crud.GetByID(ctx, id, token)
}

func (i *Invites) Create(ctx context.Context, payload dto.InviteRequest, token string) Result[model.Invite] {
	return i.crud.Create(ctx, payload, token)
}

func (i *Invites) Delete(ctx context.Context, id, token string) Result[json.RawMessage] {
	return i.crud.Delete(ctx, id, token)
}

func (i *Invites) Resend(ctx context.Context, id, token string) Result[model.Invite] {
	if id == "" {
		return FromError[model.Invite](errMissingID)
	}
	return call[model.Invite](ctx, i.crud.r, http.MethodPost, join("/invites", id, "resend"), nil, token)
}

// Verify checks an invite link before registration. It needs no token.
func (i *Invites) Verify(ctx context.Context, inviteToken string) Result[dto.InviteVerification] {
	if inviteToken == "" {
		return Fail[dto.InviteVerification]("invite token is required")
	}
	return call[dto.InviteVerification](ctx, i.crud.r, http.MethodGet, join("/invites/verify", inviteToken), nil, "")
}

// Company is the single profile of the business the account belongs to.
type Company struct {
	r Requester
}

func NewCompany(r Requester) *Company { return &Company{r: r} }

func (c *Company) Get(ctx context.Context, token string) Result[model.Company] {
	return call[model.Company](ctx, c.r, http.MethodGet, "/company", nil, token)
}

func (c *Company) Update(ctx context.Context, payload dto.CompanyRequest, token string) Result[model.Company] {
	return send[model.Company](ctx, c.r, http.MethodPut, "/company", payload, token)
}
