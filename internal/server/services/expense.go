package services

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
)

type ExpenseInput struct {
	Icon     string  `json:"icon"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}

type ExpenseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewExpenseService(db *sql.DB, m repomanager.RepositoryManager) *ExpenseService {
	return &ExpenseService{db: db, repomanager: m}
}

func (s *ExpenseService) Add(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrorValidation)
	}
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	expense, err := s.repomanager.Expenses(s.db).Create(ctx, &models.Expense{
		UserID:   userID,
		Icon:     strings.TrimSpace(in.Icon),
		Category: category,
		Amount:   in.Amount,
		Date:     date,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating expense: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, userID string) ([]models.Expense, error) {
	return s.repomanager.Expenses(s.db).ListByUser(ctx, userID)
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.repomanager.Expenses(s.db).DeleteForUser(ctx, userID, id)
}

func (s *ExpenseService) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	items, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Category", "Amount", "Date"}); err != nil {
		return err
	}
	for _, e := range items {
		if err := cw.Write([]string{csvText(e.Category), strconv.FormatFloat(e.Amount, 'f', -1, 64), e.Date.Format(csvDateLayout)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
