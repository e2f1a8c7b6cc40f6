package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job is a unit of work for one client. Products are the sales booked against
// it and cards are the contractor assignments.
type Job struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Status      JobStatus         `json:"status"`
	Priority    Priority          `json:"priority"`
	Client      Ref[Client]       `json:"client"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Products    []Ref[Sale]       `json:"products"`
	Cards       []Ref[JobCard]    `json:"cards"`
	Contractors []Ref[Contractor] `json:"contractors"`
	CreatedAt   *time.Time        `json:"createdAt,omitempty"`
}

func (j Job) GetID() string { return j.ID }

// Overdue reports whether the due date has passed on a job that is still open.
func (j Job) Overdue(now time.Time) bool {
	if j.DueDate == nil {
		return false
	}
	switch j.Status {
	case JobCompleted, JobPaymentPending, JobPaymentComplete, JobFinalized:
		return false
	}
	return now.After(*j.DueDate)
}

type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// JobCard assigns part of a job to a contractor at an agreed price.
type JobCard struct {
	ID          string          `json:"id"`
	Job         Ref[Job]        `json:"job"`
	Contractor  Ref[Contractor] `json:"contractor"`
	Price       decimal.Decimal `json:"price"`
	Status      JobCardStatus   `json:"status"`
	Attachments []Attachment    `json:"attachments"`
	Products    []Ref[Sale]     `json:"products"`
}

func (c JobCard) GetID() string { return c.ID }
