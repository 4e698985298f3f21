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

type IncomeInput struct {
	Icon   string  `json:"icon"`
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type IncomeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewIncomeService(db *sql.DB, m repomanager.RepositoryManager) *IncomeService {
	return &IncomeService{db: db, repomanager: m}
}

func (s *IncomeService) Add(ctx context.Context, userID string, in IncomeInput) (*models.Income, error) {
	source := strings.TrimSpace(in.Source)
	if source == "" {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrorValidation)
	}
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	income, err := s.repomanager.Incomes(s.db).Create(ctx, &models.Income{
		UserID: userID,
		Icon:   strings.TrimSpace(in.Icon),
		Source: source,
		Amount: in.Amount,
		Date:   date,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating income: %w", err)
	}
	return income, nil
}

func (s *IncomeService) List(ctx context.Context, userID string) ([]models.Income, error) {
	return s.repomanager.Incomes(s.db).ListByUser(ctx, userID)
}

// Delete removes an income owned by userID. Someone else's income
// reports common.ErrorNotFound, the same as a missing one.
func (s *IncomeService) Delete(ctx context.Context, userID, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.repomanager.Incomes(s.db).DeleteForUser(ctx, userID, id)
}

// ExportCSV writes the user's incomes as Source,Amount,Date rows.
func (s *IncomeService) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	items, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Source", "Amount", "Date"}); err != nil {
		return err
	}
	for _, i := range items {
		row := []string{csvText(i.Source), strconv.FormatFloat(i.Amount, 'f', -1, 64), i.Date.Format(csvDateLayout)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
