package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Income is money received from a source on a given date.
type Income struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Icon      string    `json:"icon,omitempty"`
	Source    string    `json:"source"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expense is money spent in a category on a given date.
type Expense struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Icon      string    `json:"icon,omitempty"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// Transaction is the tagged union used by the dashboard's recent list.
type Transaction struct {
	ID       string          `json:"id"`
	Type     TransactionType `json:"type"`
	Icon     string          `json:"icon,omitempty"`
	Source   string          `json:"source,omitempty"`
	Category string          `json:"category,omitempty"`
	Amount   float64         `json:"amount"`
	Date     time.Time       `json:"date"`
}

func (i *Income) AsTransaction() Transaction {
	return Transaction{ID: i.ID, Type: TransactionIncome, Icon: i.Icon, Source: i.Source, Amount: i.Amount, Date: i.Date}
}

func (e *Expense) AsTransaction() Transaction {
	return Transaction{ID: e.ID, Type: TransactionExpense, Icon: e.Icon, Category: e.Category, Amount: e.Amount, Date: e.Date}
}
