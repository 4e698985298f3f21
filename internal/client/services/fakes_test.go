package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
)

// fakeClient implements client.Client and records what it was asked.
type fakeClient struct {
	uploadName string
	uploadData []byte
	uploadURL  string
	uploadErr  error

	registered struct {
		fullName, email, password, imageURL string
	}
	registerErr error

	loginEmail string
	loginErr   error

	loggedOut bool

	deleted []string

	exportName string
	exportData []byte
	exportErr  error
}

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) Register(_ context.Context, fullName, email string, password []byte, imageURL string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered.fullName = fullName
	f.registered.email = email
	f.registered.password = string(password)
	f.registered.imageURL = imageURL
	return &models.User{ID: "u1", FullName: fullName, Email: email, ProfileImageURL: imageURL}, nil
}

func (f *fakeClient) Login(_ context.Context, email string, _ []byte) (*models.User, error) {
	f.loginEmail = email
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.User{ID: "u1", Email: email}, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.loggedOut = true
	return nil
}

func (f *fakeClient) Me(context.Context) (*models.User, error) {
	return &models.User{ID: "u1"}, nil
}

func (f *fakeClient) UploadImage(_ context.Context, filename string, data []byte) (string, error) {
	f.uploadName = filename
	f.uploadData = data
	return f.uploadURL, f.uploadErr
}

func (f *fakeClient) AddIncome(_ context.Context, in models.NewIncome) (*models.Income, error) {
	return &models.Income{ID: "i1", Source: in.Source, Amount: in.Amount}, nil
}

func (f *fakeClient) Incomes(context.Context) ([]models.Income, error) {
	return []models.Income{}, nil
}

func (f *fakeClient) DeleteIncome(_ context.Context, id string) error {
	f.deleted = append(f.deleted, "income:"+id)
	return nil
}

func (f *fakeClient) AddExpense(_ context.Context, in models.NewExpense) (*models.Expense, error) {
	return &models.Expense{ID: "e1", Category: in.Category, Amount: in.Amount}, nil
}

func (f *fakeClient) Expenses(context.Context) ([]models.Expense, error) {
	return []models.Expense{}, nil
}

func (f *fakeClient) DeleteExpense(_ context.Context, id string) error {
	f.deleted = append(f.deleted, "expense:"+id)
	return nil
}

func (f *fakeClient) Dashboard(context.Context) (*models.Dashboard, error) {
	return &models.Dashboard{}, nil
}

func (f *fakeClient) Export(_ context.Context, kind string) (string, []byte, error) {
	if f.exportErr != nil {
		return "", nil, f.exportErr
	}
	return f.exportName, f.exportData, nil
}

type fakeTokens bool

func (f fakeTokens) HasToken(context.Context) bool { return bool(f) }

var errBoom = errors.New("boom")
