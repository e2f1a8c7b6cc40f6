package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The API expects money as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type JobStatus string

const (
	JobDraft           JobStatus = "draft"
	JobPending         JobStatus = "pending"
	JobInProgress      JobStatus = "in-progress"
	JobCompleted       JobStatus = "completed"
	JobPaymentPending  JobStatus = "payment-pending"
	JobPaymentComplete JobStatus = "payment-complete"
	JobFinalized       JobStatus = "finalized"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobDraft, JobPending, JobInProgress, JobCompleted,
		JobPaymentPending, JobPaymentComplete, JobFinalized:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type ContractorStatus string

const (
	ContractorAvailable   ContractorStatus = "available"
	ContractorBusy        ContractorStatus = "busy"
	ContractorUnavailable ContractorStatus = "unavailable"
)

func (s ContractorStatus) Valid() bool {
	switch s {
	case ContractorAvailable, ContractorBusy, ContractorUnavailable:
		return true
	}
	return false
}

type JobCardStatus string

const (
	CardDraft      JobCardStatus = "draft"
	CardPending    JobCardStatus = "pending"
	CardInProgress JobCardStatus = "in-progress"
	CardCompleted  JobCardStatus = "completed"
)

func (s JobCardStatus) Valid() bool {
	switch s {
	case CardDraft, CardPending, CardInProgress, CardCompleted:
		return true
	}
	return false
}

type SaleStatus string

const (
	SalePending  SaleStatus = "pending"
	SaleOrdered  SaleStatus = "ordered"
	SaleReceived SaleStatus = "received"
	SaleUsed     SaleStatus = "used"
)

func (s SaleStatus) Valid() bool {
	switch s {
	case SalePending, SaleOrdered, SaleReceived, SaleUsed:
		return true
	}
	return false
}

type InvoiceStatus string

const (
	InvoicePending       InvoiceStatus = "pending"
	InvoicePartiallyPaid InvoiceStatus = "partially-paid"
	InvoiceSettled       InvoiceStatus = "settled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoicePending, InvoicePartiallyPaid, InvoiceSettled:
		return true
	}
	return false
}

// PaymentMethod is shared by payments (money in) and expenses (money out).
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodMpesa        PaymentMethod = "mpesa"
	MethodBankTransfer PaymentMethod = "bank-transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodMpesa, MethodBankTransfer:
		return true
	}
	return false
}

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteExpired  InviteStatus = "expired"
	InviteAccepted InviteStatus = "accepted"
)
