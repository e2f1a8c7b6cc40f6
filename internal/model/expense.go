package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrExpensePayee = errors.New("expense must pay either a contractor via a job card or a supplier via stock")

type Payee string

const (
	PayeeContractor Payee = "contractor"
	PayeeSupplier   Payee = "supplier"
)

// Expense is money paid out, either to a contractor for a job card or to a
// supplier for a stock batch. Exactly one pairing is set.
type Expense struct {
	ID         string           `json:"id"`
	Amount     decimal.Decimal  `json:"amount"`
	Ref        string           `json:"ref"`
	Method     PaymentMethod    `json:"method"`
	JobCard    *Ref[JobCard]    `json:"jobCard,omitempty"`
	Stock      *Ref[Stock]      `json:"stock,omitempty"`
	Contractor *Ref[Contractor] `json:"contractor,omitempty"`
	Supplier   *Ref[Supplier]   `json:"supplier,omitempty"`
	CreatedAt  *time.Time       `json:"createdAt,omitempty"`
}

func (e Expense) GetID() string { return e.ID }

// Payee returns which side the expense pays, or ErrExpensePayee when the
// pairing is incomplete or both sides are set.
func (e Expense) Payee() (Payee, error) {
	return PayeeOf(refSet(e.Contractor), refSet(e.JobCard), refSet(e.Supplier), refSet(e.Stock))
}

// PayeeOf applies the one-of rule to the four presence flags.
func PayeeOf(contractor, jobCard, supplier, stock bool) (Payee, error) {
	contractorSide := contractor && jobCard
	supplierSide := supplier && stock
	partial := contractor != jobCard || supplier != stock
	switch {
	case partial:
		return "", ErrExpensePayee
	case contractorSide && !supplierSide:
		return PayeeContractor, nil
	case supplierSide && !contractorSide:
		return PayeeSupplier, nil
	}
	return "", ErrExpensePayee
}

func refSet[T Entity](r *Ref[T]) bool { return r != nil && !r.IsZero() }
