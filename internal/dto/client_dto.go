package dto

import "repairs/internal/model"

type ClientRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Email       string `json:"email"       validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=7,max=20"`
	Location    string `json:"location"    validate:"required"`
}

type ContractorRequest struct {
	Name        string                 `json:"name"        validate:"required,min=2,max=100"`
	Email       string                 `json:"email"       validate:"omitempty,email"`
	PhoneNumber string                 `json:"phoneNumber" validate:"omitempty,min=7,max=20"`
	Expertise   string                 `json:"expertise"   validate:"required"`
	Specialties []string               `json:"specialties" validate:"omitempty,dive,required"`
	Rating      float64                `json:"rating"      validate:"min=0,max=5"`
	Status      model.ContractorStatus `json:"status"      validate:"omitempty,enum"`
}
