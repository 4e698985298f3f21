package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/incomes"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	mu     sync.Mutex
	byMail map[string]*models.User
	nextID int

	createErr error
	getErr    error
	existsErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byMail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byMail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	cp := *u
	cp.ID = fmt.Sprintf("u%d", f.nextID)
	cp.CreatedAt = time.Now()
	f.byMail[u.Email] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byMail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byMail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byMail[email]
	return ok, nil
}

// --- incomes / expenses ---

type fakeIncomesRepo struct {
	items     []models.Income
	createErr error
	listErr   error
	deleted   []string
}

func (f *fakeIncomesRepo) Create(_ context.Context, i *models.Income) (*models.Income, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	i.ID = "i-new"
	f.items = append(f.items, *i)
	return i, nil
}

func (f *fakeIncomesRepo) sorted(userID string, keep func(models.Income) bool) []models.Income {
	out := make([]models.Income, 0)
	for _, i := range f.items {
		if i.UserID == userID && keep(i) {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Date.After(out[b].Date) })
	return out
}

func (f *fakeIncomesRepo) ListByUser(_ context.Context, userID string) ([]models.Income, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(userID, func(models.Income) bool { return true }), nil
}

func (f *fakeIncomesRepo) ListSince(_ context.Context, userID string, since time.Time) ([]models.Income, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(userID, func(i models.Income) bool { return !i.Date.Before(since) }), nil
}

func (f *fakeIncomesRepo) Recent(_ context.Context, userID string, limit int) ([]models.Income, error) {
	out := f.sorted(userID, func(models.Income) bool { return true })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeIncomesRepo) SumByUser(_ context.Context, userID string) (float64, error) {
	var total float64
	for _, i := range f.items {
		if i.UserID == userID {
			total += i.Amount
		}
	}
	return total, nil
}

func (f *fakeIncomesRepo) DeleteForUser(_ context.Context, userID, id string) error {
	for n, i := range f.items {
		if i.ID == id && i.UserID == userID {
			f.items = append(f.items[:n], f.items[n+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeExpensesRepo struct {
	items   []models.Expense
	sumErr  error
	listErr error
}

func (f *fakeExpensesRepo) Create(_ context.Context, e *models.Expense) (*models.Expense, error) {
	e.ID = "e-new"
	f.items = append(f.items, *e)
	return e, nil
}

func (f *fakeExpensesRepo) sorted(userID string, keep func(models.Expense) bool) []models.Expense {
	out := make([]models.Expense, 0)
	for _, e := range f.items {
		if e.UserID == userID && keep(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Date.After(out[b].Date) })
	return out
}

func (f *fakeExpensesRepo) ListByUser(_ context.Context, userID string) ([]models.Expense, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(userID, func(models.Expense) bool { return true }), nil
}

func (f *fakeExpensesRepo) ListSince(_ context.Context, userID string, since time.Time) ([]models.Expense, error) {
	return f.sorted(userID, func(e models.Expense) bool { return !e.Date.Before(since) }), nil
}

func (f *fakeExpensesRepo) Recent(_ context.Context, userID string, limit int) ([]models.Expense, error) {
	out := f.sorted(userID, func(models.Expense) bool { return true })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeExpensesRepo) SumByUser(_ context.Context, userID string) (float64, error) {
	if f.sumErr != nil {
		return 0, f.sumErr
	}
	var total float64
	for _, e := range f.items {
		if e.UserID == userID {
			total += e.Amount
		}
	}
	return total, nil
}

func (f *fakeExpensesRepo) DeleteForUser(_ context.Context, userID, id string) error {
	for n, e := range f.items {
		if e.ID == id && e.UserID == userID {
			f.items = append(f.items[:n], f.items[n+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	i *fakeIncomesRepo
	e *fakeExpensesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), i: &fakeIncomesRepo{}, e: &fakeExpensesRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Incomes(dbx.DBTX) incomes.Repository          { return m.i }
func (m *fakeRepoManager) Expenses(dbx.DBTX) expenses.Repository        { return m.e }
