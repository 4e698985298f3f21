package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/services"
)

type fakeUsers struct {
	mu      sync.Mutex
	tokens  *auth.TokenManager
	byEmail map[string]*models.User
	failAll bool
}

func newFakeUsers(tm *auth.TokenManager) *fakeUsers {
	return &fakeUsers{tokens: tm, byEmail: map[string]*models.User{}}
}

func (f *fakeUsers) Register(_ context.Context, in services.RegisterInput) (*services.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("db exploded: secret details")
	}
	if in.FullName == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrorValidation)
	}
	if _, ok := f.byEmail[in.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           fmt.Sprintf("user-%d", len(f.byEmail)+1),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	f.byEmail[in.Email] = u
	token, err := f.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &services.AuthResult{User: u, Token: token}, nil
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*services.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrorValidation)
	}
	u, ok := f.byEmail[email]
	if !ok || !auth.VerifyPassword(u.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}
	token, err := f.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &services.AuthResult{User: u, Token: token}, nil
}

func (f *fakeUsers) GetUser(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeIncomes struct {
	items   []models.Income
	listErr error
}

func (f *fakeIncomes) Add(_ context.Context, userID string, in services.IncomeInput) (*models.Income, error) {
	if in.Source == "" || in.Amount <= 0 {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrorValidation)
	}
	i := models.Income{ID: fmt.Sprintf("inc-%d", len(f.items)+1), UserID: userID, Source: in.Source, Amount: in.Amount}
	f.items = append(f.items, i)
	return &i, nil
}

func (f *fakeIncomes) List(_ context.Context, userID string) ([]models.Income, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Income, 0)
	for _, i := range f.items {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeIncomes) Delete(_ context.Context, userID, id string) error {
	for n, i := range f.items {
		if i.ID == id && i.UserID == userID {
			f.items = append(f.items[:n], f.items[n+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeIncomes) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	list, err := f.List(ctx, userID)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "Source,Amount,Date\n")
	for _, i := range list {
		fmt.Fprintf(w, "%s,%v,\n", i.Source, i.Amount)
	}
	return err
}

type fakeExpenses struct {
	items []models.Expense
}

func (f *fakeExpenses) Add(_ context.Context, userID string, in services.ExpenseInput) (*models.Expense, error) {
	e := models.Expense{ID: "exp-1", UserID: userID, Category: in.Category, Amount: in.Amount}
	f.items = append(f.items, e)
	return &e, nil
}

func (f *fakeExpenses) List(_ context.Context, userID string) ([]models.Expense, error) {
	return f.items, nil
}

func (f *fakeExpenses) Delete(_ context.Context, userID, id string) error {
	return common.ErrorNotFound
}

func (f *fakeExpenses) ExportCSV(_ context.Context, _ string, w io.Writer) error {
	_, err := io.WriteString(w, "Category,Amount,Date\n")
	return err
}

type fakeDashboard struct {
	gotUser string
	gotNow  time.Time
}

func (f *fakeDashboard) Get(_ context.Context, userID string, now time.Time) (*models.Dashboard, error) {
	f.gotUser, f.gotNow = userID, now
	return &models.Dashboard{TotalIncome: 10, TotalExpense: 4, TotalBalance: 6, RecentTransactions: []models.Transaction{}}, nil
}

type fakeImages struct {
	got []byte
}

func (f *fakeImages) Upload(_ context.Context, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(string(b), "\x89PNG") {
		return "", common.ErrorUnsupportedMedia
	}
	f.got = b
	return "http://cdn/users/2025/1/1/x.png", nil
}
