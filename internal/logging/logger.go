// Package logging is the structured logger shared by the API server and
// the CLI. The server writes JSON lines to stdout; the CLI writes them to
// stderr so they never mix with REPL output.
package logging

import "context"

// Logger takes a message plus alternating key/value pairs:
//
//	log.Info(ctx, "request served", "path", path, "status", status)
//
// Request-scoped fields such as request_id are attached once with With.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that prefixes every entry with args.
	With(args ...any) Logger
}

// Nop discards everything. Tests and optional collaborators use it.
type Nop struct{}

func (Nop) Debug(context.Context, string, ...any) {}
func (Nop) Info(context.Context, string, ...any)  {}
func (Nop) Warn(context.Context, string, ...any)  {}
func (Nop) Error(context.Context, string, ...any) {}
func (n Nop) With(...any) Logger                  { return n }
