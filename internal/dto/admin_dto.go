package dto

import "repairs/internal/model"

type RoleRequest struct {
	Title       string   `json:"title"       validate:"required,min=2,max=50"`
	Description string   `json:"description" validate:"omitempty,max=255"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,required"`
}

type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required"`
}

type UserRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Email       string `json:"email"       validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,min=7,max=20"`
	Role        string `json:"role"        validate:"required"`
}

type ProfileRequest struct {
	Name           string `json:"name"           validate:"required,min=2,max=100"`
	PhoneNumber    string `json:"phoneNumber"    validate:"omitempty,min=7,max=20"`
	ProfilePicture string `json:"profilePicture" validate:"omitempty,url"`
}

type ContactInfoInput struct {
	Type  string `json:"type"  validate:"required,oneof=phone email address website"`
	Value string `json:"value" validate:"required"`
}

type PaymentMethodInput struct {
	Method  model.PaymentMethod `json:"method"  validate:"required,enum"`
	Name    string              `json:"name"`
	Account string              `json:"account"`
}

type CompanyRequest struct {
	CompanyName    string               `json:"companyName"    validate:"required,min=2"`
	Location       string               `json:"location"       validate:"required"`
	ContactInfos   []ContactInfoInput   `json:"contactInfos"   validate:"omitempty,dive"`
	PaymentMethods []PaymentMethodInput `json:"paymentMethods" validate:"omitempty,dive"`
}
