// Package models holds the client's view of API payloads.
package models

import "time"

type User struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Income struct {
	ID     string    `json:"id"`
	Icon   string    `json:"icon,omitempty"`
	Source string    `json:"source"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

type Expense struct {
	ID       string    `json:"id"`
	Icon     string    `json:"icon,omitempty"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

// NewIncome and NewExpense are request bodies; Date is YYYY-MM-DD.
type NewIncome struct {
	Icon   string  `json:"icon,omitempty"`
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type NewExpense struct {
	Icon     string  `json:"icon,omitempty"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}

type Transaction struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Source   string    `json:"source,omitempty"`
	Category string    `json:"category,omitempty"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

// Label is the source for incomes and the category for expenses.
func (t Transaction) Label() string {
	if t.Type == "income" {
		return t.Source
	}
	return t.Category
}

type Window struct {
	Total        float64       `json:"total"`
	Transactions []Transaction `json:"transactions"`
}

type Dashboard struct {
	TotalBalance       float64       `json:"totalBalance"`
	TotalIncome        float64       `json:"totalIncome"`
	TotalExpense       float64       `json:"totalExpense"`
	Last30DaysExpenses Window        `json:"last30DaysExpenses"`
	Last60DaysIncome   Window        `json:"last60DaysIncome"`
	RecentTransactions []Transaction `json:"recentTransactions"`
}
