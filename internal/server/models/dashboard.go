package models

// Window summarises transactions inside a trailing time window.
type Window struct {
	Total        float64       `json:"total"`
	Transactions []Transaction `json:"transactions"`
}

// Dashboard is the aggregate returned by GET /dashboard.
type Dashboard struct {
	TotalBalance       float64       `json:"totalBalance"`
	TotalIncome        float64       `json:"totalIncome"`
	TotalExpense       float64       `json:"totalExpense"`
	Last30DaysExpenses Window        `json:"last30DaysExpenses"`
	Last60DaysIncome   Window        `json:"last60DaysIncome"`
	RecentTransactions []Transaction `json:"recentTransactions"`
}
