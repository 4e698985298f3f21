package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/netx"
)

type authResponse struct {
	ID    string       `json:"id"`
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HTTPClient implements Client over the REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	session Session
}

func NewHTTPClient(serverURL string, timeout time.Duration, s Session) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(serverURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: s,
	}
}

func (c *HTTPClient) url(path string) string {
	if path == "/health" {
		return c.baseURL + path
	}
	return c.baseURL + common.APIPrefix + path
}

func (c *HTTPClient) newJSONRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// send runs req through the session and returns the response for a 2xx.
// The caller closes the body.
func (c *HTTPClient) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.session.Attach(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.session.OnError(ctx, err)
	}

	if err := c.session.OnResponse(ctx, resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		var m messageResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&m)
		if m.Message == "" {
			m.Message = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: m.Message}
	}

	return resp, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	req, err := c.newJSONRequest(ctx, method, path, in)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

// Register creates the account and keeps the issued token in the session.
func (c *HTTPClient) Register(ctx context.Context, fullName, email string, password []byte, profileImageURL string) (*models.User, error) {
	in := map[string]string{
		"fullName":        fullName,
		"email":           email,
		"password":        string(password),
		"profileImageUrl": profileImageURL,
	}
	return c.authenticate(ctx, "/auth/register", in)
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	in := map[string]string{"email": email, "password": string(password)}
	return c.authenticate(ctx, "/auth/login", in)
}

func (c *HTTPClient) authenticate(ctx context.Context, path string, in any) (*models.User, error) {
	var out authResponse
	if err := c.doJSON(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	if out.Token == "" || out.User == nil {
		return nil, fmt.Errorf("malformed auth response")
	}
	if err := c.session.Save(ctx, out.Token); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout only forgets the token locally; the server keeps no sessions.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.session.Clear(ctx)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/getUser", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	req, err := netx.NewMultipartRequest(ctx, c.url("/auth/upload-image"), "image", filename, data)
	if err != nil {
		return "", err
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		ImageURL string `json:"imageURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return out.ImageURL, nil
}

func (c *HTTPClient) AddIncome(ctx context.Context, in models.NewIncome) (*models.Income, error) {
	var out models.Income
	if err := c.doJSON(ctx, http.MethodPost, "/income/add", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Incomes(ctx context.Context) ([]models.Income, error) {
	var out []models.Income
	if err := c.doJSON(ctx, http.MethodGet, "/income/get", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteIncome(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/income/"+id, nil, nil)
}

func (c *HTTPClient) AddExpense(ctx context.Context, in models.NewExpense) (*models.Expense, error) {
	var out models.Expense
	if err := c.doJSON(ctx, http.MethodPost, "/expense/add", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Expenses(ctx context.Context) ([]models.Expense, error) {
	var out []models.Expense
	if err := c.doJSON(ctx, http.MethodGet, "/expense/get", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteExpense(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/expense/"+id, nil, nil)
}

func (c *HTTPClient) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export downloads the CSV for kind ("income" or "expense").
func (c *HTTPClient) Export(ctx context.Context, kind string) (string, []byte, error) {
	if kind != "income" && kind != "expense" {
		return "", nil, fmt.Errorf("unknown export kind %q", kind)
	}

	req, err := c.newJSONRequest(ctx, http.MethodGet, "/"+kind+"/downloadexcel", nil)
	if err != nil {
		return "", nil, err
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, c.session.OnError(ctx, err)
	}

	filename := kind + "_details.csv"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		filename = params["filename"]
	}
	return filename, data, nil
}
