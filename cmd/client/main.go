package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/expensetracker/internal/client/cli"
	"github.com/dmitrijs2005/expensetracker/internal/client/client"
	"github.com/dmitrijs2005/expensetracker/internal/client/config"
	"github.com/dmitrijs2005/expensetracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/expensetracker/internal/client/services"
	"github.com/dmitrijs2005/expensetracker/internal/client/session"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %v", err)
		return
	}
	defer db.Close()

	var app *cli.App
	holder := session.NewHolder(
		session.NewMetadataStore(metadata.NewSQLiteRepository(db)),
		logger,
		func(ctx context.Context) { app.LoginRedirect(ctx) },
	)

	api := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, holder)
	app = cli.NewApp(
		services.NewAuthService(api, holder),
		services.NewTransactionService(api, cfg.ExportDir),
		logger,
		os.Stdin,
		os.Stdout,
	)

	app.Run(ctx)
}
