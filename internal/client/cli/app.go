package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/client/client"
	"github.com/dmitrijs2005/expensetracker/internal/client/services"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
)

type App struct {
	authService services.AuthService
	txService   services.TransactionService
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	now         func() time.Time

	userName  string
	needLogin atomic.Bool
}

func NewApp(as services.AuthService, ts services.TransactionService, l logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		authService: as,
		txService:   ts,
		logger:      l.With("module", "cli"),
		reader:      bufio.NewReader(in),
		out:         out,
		now:         time.Now,
	}
}

// LoginRedirect marks the session as lost. The REPL asks for credentials
// again before the next command.
func (a *App) LoginRedirect(ctx context.Context) {
	a.userName = ""
	a.needLogin.Store(true)
}

func (a *App) takeLoginRedirect() bool {
	return a.needLogin.Swap(false)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.LoggedIn(ctx)
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Run greets the user, restores the saved session when there is one and
// serves commands until exit or end of input.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to the expense tracker CLI (type 'help' for commands)")

	if err := a.authService.Ping(ctx); err != nil {
		a.report(ctx, err)
	}

	if a.isLoggedIn(ctx) {
		if u, err := a.authService.Current(ctx); err == nil {
			a.userName = u.Email
		} else {
			a.report(ctx, err)
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// report prints a user-facing line for err. Unexpected errors are logged too.
func (a *App) report(ctx context.Context, err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		a.println("Error:", apiErr.Message)
	case errors.Is(err, client.ErrUnauthorized):
		// announced by the REPL when it serves the login redirect
	case errors.Is(err, client.ErrTimeout):
		a.println("Request timed out")
	case errors.Is(err, client.ErrUnavailable):
		a.println("Server unavailable")
	case errors.Is(err, client.ErrServerFault):
		a.println("Server error, try again later")
	default:
		a.logger.Error(ctx, "command failed", "error", err)
		a.println("Error:", err)
	}
}
