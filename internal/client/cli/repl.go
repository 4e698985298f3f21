package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// execIface is the command surface the REPL drives. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	takeLoginRedirect() bool
	println(args ...any)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error

	AddIncome(ctx context.Context) error
	AddExpense(ctx context.Context) error
	Incomes(ctx context.Context) error
	Expenses(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Dashboard(ctx context.Context) error
	Export(ctx context.Context, args []string) error
}

const (
	helpGuest = "Available commands: register, login, exit"
	helpUser  = "Available commands: whoami, addincome, addexpense, incomes, expenses, delete <income|expense> <id>, dashboard, export <income|expense>, logout, exit"
)

// runREPL reads one command per line and dispatches it. Handlers report
// their own errors. A pending login redirect is served before the next
// prompt. The loop ends on EOF, "exit" or "quit".
//
// Prompts inside handlers read from the same reader, so the REPL must not
// buffer ahead of them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if a.takeLoginRedirect() {
			a.println("Session expired, please log in again")
			_ = a.Login(ctx)
		}

		a.println(fmt.Sprintf("et %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				a.println(helpUser)
			} else {
				a.println(helpGuest)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "addincome":
			_ = a.AddIncome(ctx)
		case "addexpense":
			_ = a.AddExpense(ctx)
		case "incomes":
			_ = a.Incomes(ctx)
		case "expenses":
			_ = a.Expenses(ctx)
		case "delete":
			_ = a.Delete(ctx, args)
		case "dashboard":
			_ = a.Dashboard(ctx)
		case "export":
			_ = a.Export(ctx, args)

		case "exit", "quit":
			a.println("Bye!")
			return

		default:
			a.println("Unknown command:", cmd)
		}
	}
}
