package model

import "time"

type Invite struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Role      Ref[Role]    `json:"role"`
	Used      bool         `json:"used"`
	InvitedBy Ref[User]    `json:"invited_by"`
	Company   Ref[Company] `json:"company"`
}

func (i Invite) GetID() string { return i.ID }

// Status derives the invite state: accepted once used, otherwise pending until
// expiresAt and expired from then on.
func (i Invite) Status(now time.Time) InviteStatus {
	if i.Used {
		return InviteAccepted
	}
	if i.ExpiresAt.After(now) {
		return InvitePending
	}
	return InviteExpired
}
