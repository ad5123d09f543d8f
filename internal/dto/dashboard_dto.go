package dto

import "github.com/shopspring/decimal"

// DashboardResponse aggregates a seller's day at a glance: sales totals,
// in-flight transfers, discount decisions, unread return notices and expenses.
type DashboardResponse struct {
	Sales struct {
		ConfirmedCount  int             `json:"confirmed_count"`
		PendingCount    int             `json:"pending_count"`
		ConfirmedAmount decimal.Decimal `json:"confirmed_amount"`
		PendingAmount   decimal.Decimal `json:"pending_amount"`
	} `json:"sales"`
	Transfers ShipmentStatusSummary `json:"transfers"`
	Discounts struct {
		Pending  int `json:"pending"`
		Approved int `json:"approved"`
		Rejected int `json:"rejected"`
	} `json:"discounts"`
	UnreadReturnNotices int             `json:"unread_return_notices"`
	ExpensesToday       decimal.Decimal `json:"expenses_today"`
}

type LocationResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Active bool   `json:"active"`
}
