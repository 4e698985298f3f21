// Package client talks to the expense tracker REST API.
//
// HTTPClient issues JSON requests against /api/v1 and delegates every
// credential decision to a Session: the session attaches the stored token,
// inspects responses (401 clears the token, 500 keeps it) and classifies
// transport failures. Outcomes surface as sentinel errors matched with
// errors.Is: ErrUnauthorized, ErrServerFault, ErrTimeout, ErrUnavailable.
// A 4xx with a message body becomes *APIError.
//
// InitDatabase and RunMigrations bootstrap the local SQLite file that keeps
// the session token between runs.
package client
