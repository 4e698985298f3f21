package cli

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/client/services"
	"github.com/dmitrijs2005/expensetracker/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for the account fields, creates the account and keeps
// the session. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	imagePath, err := getSimpleText(a.reader, "Profile image path (optional)", a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, services.RegisterInput{
		FullName:  fullName,
		Email:     email,
		Password:  password,
		ImagePath: imagePath,
	})
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.userName = u.Email
	a.println("Registered as", u.Email)
	return nil
}

// Login prompts for credentials and stores the issued token.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.userName = u.Email
	a.println("Logged in as", u.Email)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.Current(ctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.println(u.FullName, "<"+u.Email+">")
	if u.ProfileImageURL != "" {
		a.println("Profile image:", u.ProfileImageURL)
	}
	return nil
}

// Logout forgets the stored token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	a.userName = ""
	a.println("Logged out")
	return nil
}
