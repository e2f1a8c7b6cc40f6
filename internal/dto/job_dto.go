package dto

import (
	"time"

	"repairs/internal/model"

	"github.com/shopspring/decimal"
)

type JobRequest struct {
	Title       string          `json:"title"       validate:"required,min=2"`
	Description string          `json:"description"`
	Status      model.JobStatus `json:"status"      validate:"omitempty,enum"`
	Priority    model.Priority  `json:"priority"    validate:"omitempty,enum"`
	Client      string          `json:"client"      validate:"required"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Contractors []string        `json:"contractors" validate:"omitempty,dive,required"`
}

type JobStatusRequest struct {
	Status model.JobStatus `json:"status" validate:"required,enum"`
}

type JobCardRequest struct {
	Job        string              `json:"job"        validate:"required"`
	Contractor string              `json:"contractor" validate:"required"`
	Price      decimal.Decimal     `json:"price"      validate:"min=0"`
	Status     model.JobCardStatus `json:"status"     validate:"omitempty,enum"`
}

type JobCardStatusRequest struct {
	Status model.JobCardStatus `json:"status" validate:"required,enum"`
}

type AttachmentRequest struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url"  validate:"required,url"`
}

// JobCardProductRequest books a product onto a job card as a sale line.
type JobCardProductRequest struct {
	Product  string          `json:"product"  validate:"required"`
	Quantity int             `json:"quantity" validate:"required,min=1"`
	Price    decimal.Decimal `json:"price"    validate:"min=0"`
}
