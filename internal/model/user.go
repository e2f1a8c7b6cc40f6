package model

// User is an account on the remote API. Email uniqueness is enforced server-side.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Role           Ref[Role] `json:"role"`
}

func (u User) GetID() string { return u.ID }

type Role struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions"`
}

func (r Role) GetID() string { return r.ID }

// Can reports whether the role grants the permission with the given title.
func (r Role) Can(permission string) bool {
	for _, p := range r.Permissions {
		if p.Title == permission {
			return true
		}
	}
	return false
}

type Permission struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (p Permission) GetID() string { return p.ID }

type ContactInfo struct {
	Type  string `json:"type"` // phone | email | address | website
	Value string `json:"value"`
}

type CompanyPaymentMethod struct {
	Method  PaymentMethod `json:"method"`
	Name    string        `json:"name,omitempty"`
	Account string        `json:"account,omitempty"`
}

type Company struct {
	ID             string                 `json:"id"`
	CompanyName    string                 `json:"companyName"`
	Location       string                 `json:"location"`
	ContactInfos   []ContactInfo          `json:"contactInfos"`
	PaymentMethods []CompanyPaymentMethod `json:"paymentMethods"`
}

func (c Company) GetID() string { return c.ID }
