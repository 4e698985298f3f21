package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("rest-test-secret")

type testEnv struct {
	router    *gin.Engine
	users     *fakeUsers
	incomes   *fakeIncomes
	expenses  *fakeExpenses
	dashboard *fakeDashboard
	images    *fakeImages
	server    *Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tm := auth.NewTokenManager(auth.Options{Secret: testSecret, TTL: time.Hour})
	env := &testEnv{
		users:     newFakeUsers(tm),
		incomes:   &fakeIncomes{},
		expenses:  &fakeExpenses{},
		dashboard: &fakeDashboard{},
		images:    &fakeImages{},
	}
	env.server = NewServer(":0", "*", logging.Nop{}, Deps{
		Users:     env.users,
		Incomes:   env.incomes,
		Expenses:  env.expenses,
		Dashboard: env.dashboard,
		Images:    env.images,
		Tokens:    tm,
	})
	env.router = env.server.Router()
	return env
}

func (e *testEnv) do(method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func (e *testEnv) registerAlice(t *testing.T) string {
	t.Helper()
	w := e.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"fullName": "Alice", "email": "alice@x.com", "password": "p@ss",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterThenGetUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"fullName": "Alice", "email": "alice@x.com", "password": "p@ss",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	token := body["token"].(string)
	assert.NotEmpty(t, body["id"])
	assert.NotContains(t, body["user"], "passwordHash")

	w = env.do(http.MethodGet, "/api/v1/auth/getUser", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)
	assert.Equal(t, "alice@x.com", user["email"])
	assert.Equal(t, body["id"], user["id"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestRegister_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.registerAlice(t)

	w := env.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"fullName": "Alice", "email": "alice@x.com", "password": "other",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already in use", decode(t, w)["message"])

	w = env.do(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "bob@x.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", decode(t, w)["message"])

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_UnexpectedErrorIsHidden(t *testing.T) {
	env := newTestEnv(t)
	env.users.failAll = true

	w := env.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"fullName": "Alice", "email": "alice@x.com", "password": "p",
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"message": "Server Error"}, decode(t, w))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.registerAlice(t)

	w := env.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "alice@x.com", "password": "p@ss"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	uid, err := auth.GetUserIDFromToken(body["token"].(string), testSecret, time.Now)
	require.NoError(t, err)
	assert.Equal(t, body["id"], uid)

	w = env.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "alice@x.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"message": "Invalid credentials"}, decode(t, w))

	w = env.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "nobody@x.com", "password": "p@ss"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"message": "Invalid credentials"}, decode(t, w))

	w = env.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "alice@x.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEqual(t, "Invalid credentials", decode(t, w)["message"])
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAlice(t)

	expired, err := auth.GenerateToken("user-1", testSecret, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	foreign, err := auth.GenerateToken("user-1", []byte("another-secret"), time.Hour, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header http.Header
		status int
		msg    string
	}{
		{"no header", nil, http.StatusUnauthorized, msgNoToken},
		{"wrong scheme", http.Header{"Authorization": {"Basic abc"}}, http.StatusUnauthorized, msgNoToken},
		{"empty bearer", http.Header{"Authorization": {"Bearer "}}, http.StatusUnauthorized, msgNoToken},
		{"garbage", bearer("not.a.jwt"), http.StatusUnauthorized, msgTokenFailed},
		{"expired", bearer(expired), http.StatusUnauthorized, msgTokenFailed},
		{"other secret", bearer(foreign), http.StatusUnauthorized, msgTokenFailed},
		{"lowercase scheme", http.Header{"Authorization": {"bearer " + token}}, http.StatusOK, ""},
		{"valid", bearer(token), http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodGet, "/api/v1/auth/getUser", nil, tt.header)
			assert.Equal(t, tt.status, w.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, decode(t, w)["message"])
			}
		})
	}
}

func TestAuthMiddleware_IdentityInRequestContext(t *testing.T) {
	env := newTestEnv(t)
	token, err := env.server.deps.Tokens.Issue("user-42")
	require.NoError(t, err)

	r := gin.New()
	var (
		gotID  string
		gotOK  bool
		ginKey bool
	)
	r.GET("/whoami", env.server.authMiddleware(), func(c *gin.Context) {
		gotID, gotOK = userID(c)
		_, ginKey = c.Get("userID")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, gotOK)
	assert.Equal(t, "user-42", gotID)
	assert.False(t, ginKey)
}

func TestGetUser_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	token, err := env.server.deps.Tokens.Issue("ghost")
	require.NoError(t, err)

	w := env.do(http.MethodGet, "/api/v1/auth/getUser", nil, bearer(token))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIncomeRoutes(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAlice(t)

	w := env.do(http.MethodPost, "/api/v1/income/add", map[string]any{"source": "Salary", "amount": 100, "date": "2025-01-01"}, bearer(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	w = env.do(http.MethodPost, "/api/v1/income/add", map[string]any{"source": "", "amount": 100}, bearer(token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/v1/income/get", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = env.do(http.MethodGet, "/api/v1/income/downloadexcel", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="income_details.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Source,Amount,Date\n"))

	w = env.do(http.MethodDelete, "/api/v1/income/"+id, nil, bearer(token))
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodDelete, "/api/v1/income/"+id, nil, bearer(token))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/v1/income/get", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIncomeList_ServerError(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAlice(t)
	env.incomes.listErr = errors.New("boom")

	w := env.do(http.MethodGet, "/api/v1/income/get", nil, bearer(token))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server Error", decode(t, w)["message"])

	w = env.do(http.MethodGet, "/api/v1/income/downloadexcel", nil, bearer(token))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestExpenseRoutes(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAlice(t)

	w := env.do(http.MethodPost, "/api/v1/expense/add", map[string]any{"category": "Rent", "amount": 800, "date": "2025-01-01"}, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Rent", decode(t, w)["category"])

	w = env.do(http.MethodGet, "/api/v1/expense/downloadexcel", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="expense_details.csv"`, w.Header().Get("Content-Disposition"))

	w = env.do(http.MethodDelete, "/api/v1/expense/whatever", nil, bearer(token))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardRoute(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAlice(t)
	fixed := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	env.server.now = func() time.Time { return fixed }

	w := env.do(http.MethodGet, "/api/v1/dashboard", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 6.0, body["totalBalance"])
	assert.Equal(t, "user-1", env.dashboard.gotUser)
	assert.Equal(t, fixed, env.dashboard.gotNow)
}

func TestUploadImage(t *testing.T) {
	env := newTestEnv(t)

	upload := func(field string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile(field, "avatar.png")
		require.NoError(t, err)
		_, _ = fw.Write(content)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/upload-image", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		return w
	}

	w := upload("image", []byte("\x89PNG\r\n\x1a\nrest"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://cdn/users/2025/1/1/x.png", decode(t, w)["imageURL"])

	w = upload("other", []byte("\x89PNG"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", decode(t, w)["message"])

	w = upload("image", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthMetricsAndRequestID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get("X-Request-ID"), 16)

	w = env.do(http.MethodGet, "/health", nil, http.Header{"X-Request-Id": {"abc"}})
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))

	w = env.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `expensetracker_http_requests_total{method="GET",route="/health",status="200"} 2`)
}

func TestBearerToken(t *testing.T) {
	tok, err := bearerToken("Bearer  abc ")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = bearerToken("")
	assert.Error(t, err)
	_, err = bearerToken("Bearer")
	assert.Error(t, err)
	_, err = bearerToken("Token abc")
	assert.Error(t, err)
}
