package dto

import "github.com/shopspring/decimal"

// StudentStats counts students by status.
type StudentStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Trial    int `json:"trial"`
}

// FinanceStats sums transaction amounts.
type FinanceStats struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Pending decimal.Decimal `json:"pending"`
	Paid    decimal.Decimal `json:"paid"`
}

// ScheduleStats counts booked classes relative to a reference time.
type ScheduleStats struct {
	Total    int `json:"total"`
	Upcoming int `json:"upcoming"`
}

// DashboardStats aggregates every collection for the dashboard header.
type DashboardStats struct {
	Students  StudentStats  `json:"students"`
	Schedules ScheduleStats `json:"schedules"`
	Finance   FinanceStats  `json:"finance"`
}
