// Package services contains the CLI's application services. They sit
// between the REPL and the API client and own the local side effects
// (reading avatar files, writing exports).
package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/expensetracker/internal/client/client"
	"github.com/dmitrijs2005/expensetracker/internal/client/models"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// TokenState reports whether a session token is stored. session.Holder
// satisfies it.
type TokenState interface {
	HasToken(ctx context.Context) bool
}

// RegisterInput is what the CLI collects for a new account. ImagePath is
// optional; when set the file is uploaded first and its URL attached.
type RegisterInput struct {
	FullName  string
	Email     string
	Password  []byte
	ImagePath string
}

// AuthService covers account operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
	LoggedIn(ctx context.Context) bool
}

type authService struct {
	client client.Client
	tokens TokenState
}

func NewAuthService(c client.Client, tokens TokenState) AuthService {
	return &authService{client: c, tokens: tokens}
}

func (a *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	var imageURL string
	if path := strings.TrimSpace(in.ImagePath); path != "" {
		data, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		imageURL, err = a.client.UploadImage(ctx, filepath.Base(path), data)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
	}
	return a.client.Register(ctx, in.FullName, in.Email, in.Password, imageURL)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	return a.client.Login(ctx, email, password)
}

// Logout forgets the token locally. The server keeps no session to end.
func (a *authService) Logout(ctx context.Context) error {
	return a.client.Logout(ctx)
}

func (a *authService) Current(ctx context.Context) (*models.User, error) {
	return a.client.Me(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) LoggedIn(ctx context.Context) bool {
	return a.tokens.HasToken(ctx)
}
