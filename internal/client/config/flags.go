package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the API server
//	-t int      request timeout in milliseconds
//	-d string   path to the local SQLite database
//	-l string   log level
//
// Only -t needs special care: it is applied when given explicitly, so a
// JSON value is not replaced by the flag's default.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the API server")
	timeoutMs := fs.Int64("t", cfg.RequestTimeout.Milliseconds(), "request timeout (in milliseconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeoutMs) * time.Millisecond
		}
	})
}
