package dto

import "github.com/shopspring/decimal"

// DashboardStats is the analytics block the API computes for the home screen.
type DashboardStats struct {
	TotalJobs       int             `json:"totalJobs"`
	ActiveJobs      int             `json:"activeJobs"`
	CompletedJobs   int             `json:"completedJobs"`
	TotalClients    int             `json:"totalClients"`
	PendingInvoices int             `json:"pendingInvoices"`
	Revenue         decimal.Decimal `json:"revenue"`
	Expenses        decimal.Decimal `json:"expenses"`
	JobsByStatus    map[string]int  `json:"jobsByStatus"`
	MonthlyRevenue  []MonthlyAmount `json:"monthlyRevenue"`
}

type MonthlyAmount struct {
	Month  string          `json:"month"` // YYYY-MM
	Amount decimal.Decimal `json:"amount"`
}

// Profit is revenue less expenses as reported by the API.
func (d DashboardStats) Profit() decimal.Decimal { return d.Revenue.Sub(d.Expenses) }
