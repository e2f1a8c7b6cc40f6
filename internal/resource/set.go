package resource

import (
	"context"
	"net/http"

	"repairs/internal/dto"
)

type Dashboard struct {
	r Requester
}

func NewDashboard(r Requester) *Dashboard { return &Dashboard{r: r} }

func (d *Dashboard) Stats(ctx context.Context, token string) Result[dto.DashboardStats] {
	return call[dto.DashboardStats](ctx, d.r, http.MethodGet, "/dashboard/stats", nil, token)
}

// Set bundles one wrapper per entity over a shared Requester.
type Set struct {
	Auth        *Auth
	Clients     *Clients
	Contractors *Contractors
	Jobs        *Jobs
	JobCards    *JobCards
	Products    *Products
	Suppliers   *Suppliers
	Stock       *Stock
	Sales       *Sales
	Invoices    *Invoices
	Payments    *Payments
	Expenses    *Expenses
	Roles       *Roles
	Invites     *Invites
	Users       *Users
	Company     *Company
	Dashboard   *Dashboard
}

func NewSet(r Requester) *Set {
	return &Set{
		Auth:        NewAuth(r),
		Clients:     NewClients(r),
		Contractors: NewContractors(r),
		Jobs:        NewJobs(r),
		JobCards:    NewJobCards(r),
		Products:    NewProducts(r),
		Suppliers:   NewSuppliers(r),
		Stock:       NewStock(r),
		Sales:       NewSales(r),
		Invoices:    NewInvoices(r),
		Payments:    NewPayments(r),
		Expenses:    NewExpenses(r),
		Roles:       NewRoles(r),
		Invites:     NewInvites(r),
		Users:       NewUsers(r),
		Company:     NewCompany(r),
		Dashboard:   NewDashboard(r),
	}
}
