package session

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/dmitrijs2005/expensetracker/internal/client/client"
	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
)

// Holder attaches the stored token to outgoing requests and reacts to the
// server's verdict. It never refreshes tokens.
type Holder struct {
	store          Store
	logger         logging.Logger
	onUnauthorized func(ctx context.Context)
}

// NewHolder builds a Holder. onUnauthorized is the login redirect and may be nil.
func NewHolder(store Store, l logging.Logger, onUnauthorized func(ctx context.Context)) *Holder {
	return &Holder{
		store:          store,
		logger:         l.With("module", "session"),
		onUnauthorized: onUnauthorized,
	}
}

// Attach sets "Authorization: Bearer <token>" when a token is stored and
// leaves the request untouched otherwise.
func (h *Holder) Attach(ctx context.Context, req *http.Request) error {
	token, err := h.store.Load(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}
	return nil
}

// OnResponse inspects the status code. 401 drops the token and triggers
// the login redirect; 500 is logged and the token kept.
func (h *Holder) OnResponse(ctx context.Context, resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if err := h.store.Clear(ctx); err != nil {
			h.logger.Error(ctx, "failed to clear token", "error", err)
		}
		if h.onUnauthorized != nil {
			h.onUnauthorized(ctx)
		}
		return client.ErrUnauthorized
	case http.StatusInternalServerError:
		args := []any{"status", resp.StatusCode}
		if resp.Request != nil {
			args = append(args, "method", resp.Request.Method, "url", resp.Request.URL.String())
		}
		h.logger.Error(ctx, "server error", args...)
		return client.ErrServerFault
	}
	return nil
}

// OnError classifies a transport failure.
func (h *Holder) OnError(ctx context.Context, err error) error {
	if isTimeout(err) {
		h.logger.Warn(ctx, "timeout", "error", err)
		return client.ErrTimeout
	}
	h.logger.Warn(ctx, "server unreachable", "error", err)
	return client.ErrUnavailable
}

func (h *Holder) Save(ctx context.Context, token string) error {
	return h.store.Save(ctx, token)
}

func (h *Holder) Clear(ctx context.Context) error {
	return h.store.Clear(ctx)
}

// HasToken reports whether a token is currently stored.
func (h *Holder) HasToken(ctx context.Context) bool {
	token, err := h.store.Load(ctx)
	return err == nil && token != ""
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
