package model

type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Location    string    `json:"location"`
	AddedBy     Ref[User] `json:"added_by"`
}

func (c Client) GetID() string { return c.ID }

type Contractor struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email,omitempty"`
	PhoneNumber string           `json:"phoneNumber,omitempty"`
	Expertise   string           `json:"expertise"`
	Specialties []string         `json:"specialties"`
	Rating      float64          `json:"rating"`
	Status      ContractorStatus `json:"status"`
}

func (c Contractor) GetID() string { return c.ID }

// Available reports whether the contractor can be assigned a new job card.
func (c Contractor) Available() bool { return c.Status == ContractorAvailable }
