package dto

import "github.com/shopspring/decimal"

type ComptabiliteFilter struct {
	From     string `form:"from"`     // YYYY-MM-DD inclusive
	To       string `form:"to"`       // YYYY-MM-DD inclusive
	Customer string `form:"customer"` // customer UUID; empty = all
}

// ComptabiliteSummaryResponse aggregates sales revenue over a period.
// Comptant and facilite figures always sum to the total.
type ComptabiliteSummaryResponse struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	ComptantRevenue   decimal.Decimal `json:"comptantRevenue"`
	FaciliteRevenue   decimal.Decimal `json:"faciliteRevenue"`
	TotalTransactions int64           `json:"totalTransactions"`
	PendingCount      int64           `json:"pendingCount"`
	EnCoursCount      int64           `json:"enCoursCount"`
	PaidCount         int64           `json:"paidCount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
}
