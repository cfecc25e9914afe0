package domain

import "github.com/google/uuid"

// MonthCount is a per-month aggregate row.
type MonthCount struct {
	Month string `db:"month" json:"month"`
	Count int    `db:"count" json:"count"`
}

// MonthAmount is a per-month aggregate with a monetary total.
type MonthAmount struct {
	Month  string  `db:"month" json:"month"`
	Count  int     `db:"count" json:"count"`
	Amount float64 `db:"amount" json:"amount"`
}

// DayCount is a per-day aggregate row.
type DayCount struct {
	Day   string `db:"day" json:"day"`
	Count int    `db:"count" json:"count"`
}

// UserStats summarizes the user base for the admin dashboard.
type UserStats struct {
	Total  int            `json:"total"`
	Active int            `json:"active"`
	ByRole map[string]int `json:"byRole"`
	Recent []User         `json:"recent"`
}

// ReportStats summarizes reports for the admin dashboard.
type ReportStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// BillStats summarizes bills for the admin dashboard.
type BillStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	Recent   []Bill         `json:"recent"`
}

// Trends carries the monthly growth series on the admin dashboard.
type Trends struct {
	MonthlyUsers []MonthCount `json:"monthlyUsers"`
	MonthlyBills []MonthCount `json:"monthlyBills"`
}

// AdminStats is the admin dashboard payload.
type AdminStats struct {
	Users   UserStats   `json:"users"`
	Reports ReportStats `json:"reports"`
	Bills   BillStats   `json:"bills"`
	Trends  Trends      `json:"trends"`
}

// Analytics is the admin analytics payload over a rolling period.
type Analytics struct {
	PeriodDays        int            `json:"periodDays"`
	DailyUsers        []DayCount     `json:"dailyUsers"`
	DailyBills        []DayCount     `json:"dailyBills"`
	CategoryBreakdown map[string]int `json:"categoryBreakdown"`
	StatusBreakdown   map[string]int `json:"statusBreakdown"`
}

// BillAnalytics is the per-user bill analytics payload.
type BillAnalytics struct {
	TotalBills        int                `json:"totalBills"`
	TotalAmount       float64            `json:"totalAmount"`
	AverageAmount     float64            `json:"averageAmount"`
	CategoryBreakdown map[string]int     `json:"categoryBreakdown"`
	StatusBreakdown   map[string]int     `json:"statusBreakdown"`
	AmountByCategory  map[string]float64 `json:"amountByCategory"`
	MonthlyTrend      []MonthAmount      `json:"monthlyTrend"`
}

// UserActionCount ranks users by audit activity.
type UserActionCount struct {
	UserID uuid.UUID `db:"user_id" json:"userId"`
	Name   string    `db:"name" json:"name"`
	Count  int       `db:"count" json:"count"`
}

// AuditStats is the audit overview payload.
type AuditStats struct {
	Total          int               `json:"total"`
	ByAction       map[string]int    `json:"byAction"`
	TopUsers       []UserActionCount `json:"topUsers"`
	RecentActivity []AuditLog        `json:"recentActivity"`
}
