package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/bloglist/handlers"
	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg"
)

// ─── fakes ───

type fakeAuth struct{}

func (fakeAuth) Login(context.Context, *models.LoginRequest) (*models.LoginResponse, error) {
	return nil, nil
}

func (fakeAuth) IssueToken(*models.User) (string, error) { return "", nil }

// ValidateToken accepts "good-<userID>" and rejects everything else.
func (fakeAuth) ValidateToken(token string) (*models.TokenClaims, error) {
	if id, ok := strings.CutPrefix(token, "good-"); ok {
		return &models.TokenClaims{ID: id}, nil
	}
	return nil, fmt.Errorf("%w: token invalid", pkg.ErrUnauthorized)
}

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) Create(context.Context, *models.User) error { return nil }

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
}

func (f *fakeUsers) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, pkg.ErrNotFound
}

func (f *fakeUsers) GetAll(context.Context) ([]models.User, error) { return nil, nil }

func (f *fakeUsers) Count(context.Context) (int, error) { return len(f.users), nil }

// echoUser writes the context user's username, or "anonymous".
func echoUser(w http.ResponseWriter, r *http.Request) {
	if u := handlers.UserFromContext(r.Context()); u != nil {
		fmt.Fprint(w, u.Username)
		return
	}
	fmt.Fprint(w, "anonymous")
}

// ─── UserExtractor ───

func TestUserExtractor(t *testing.T) {
	users := &fakeUsers{users: map[string]*models.User{
		"u1": {ID: "u1", Username: "root", PasswordHash: "hash"},
	}}
	mw := NewAuthMiddleware(fakeAuth{}, users)
	h := mw.UserExtractorFunc(echoUser)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "no header", header: "", wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "valid token", header: "Bearer good-u1", wantStatus: http.StatusOK, wantBody: "root"},
		{name: "valid token, user gone", header: "Bearer good-u2", wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "invalid token", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"token invalid"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestUserExtractorDropsPasswordHash(t *testing.T) {
	users := &fakeUsers{users: map[string]*models.User{
		"u1": {ID: "u1", Username: "root", PasswordHash: "hash"},
	}}
	mw := NewAuthMiddleware(fakeAuth{}, users)

	var seen *models.User
	h := mw.UserExtractorFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = handlers.UserFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/blogs/x", nil)
	req.Header.Set("Authorization", "Bearer good-u1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Empty(t, seen.PasswordHash)
}

// ─── RequestLogger ───

func TestRequestLoggerAssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	var ctxLogged bool
	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Debug().Msg("inside")
		ctxLogged = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.True(t, ctxLogged)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	requestID := rec.Header().Get(RequestIDHeader)
	require.NotEmpty(t, requestID)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var access map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &access))
	assert.Equal(t, requestID, access["request_id"])
	assert.Equal(t, "/api/health", access["path"])
	assert.EqualValues(t, http.StatusTeapot, access["status"])
}

func TestRequestLoggerKeepsValidIncomingID(t *testing.T) {
	const id = "0b6f6f1e-7c55-4a53-9a38-0ad0e1c2f1d4"
	h := RequestLogger(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestRequestLoggerRecoversPanics(t *testing.T) {
	h := RequestLogger(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

// ─── Metrics ───

func TestMetricsUseRoutePattern(t *testing.T) {
	m := NewMetrics()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/blogs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := m.Middleware(mux)

	for _, id := range []string{"a", "b", "c"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/blogs/"+id, nil))
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "GET /api/blogs/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
	assert.Zero(t, testutil.ToFloat64(m.inFlight))
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	m := NewMetrics()
	m.LoginRejected.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bloglist_login_rate_limit_rejects_total 1")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
