// Package cli provides the interactive expense tracker command-line client.
//
// It reads commands from a REPL and forwards them to the client services:
//   - register / login / whoami / logout
//   - addincome / addexpense / incomes / expenses / delete
//   - dashboard
//   - export (CSV into the configured export directory)
//
// When the server rejects the stored token the session holder calls
// App.LoginRedirect and the REPL drops back into the login prompt before
// accepting the next command.
package cli
