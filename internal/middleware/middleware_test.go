package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellpath/portal/internal/ctxkeys"
	"github.com/wellpath/portal/internal/metrics"
	"github.com/wellpath/portal/internal/model"
	"github.com/wellpath/portal/internal/service"
)

type fakeAuth struct {
	identities map[string]*model.Identity
	verifyErr  error
}

func (f *fakeAuth) Verify(_ context.Context, token string) (*model.Identity, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	identity, ok := f.identities[token]
	if !ok {
		return nil, &service.Error{Class: service.ErrUnauthorized, Message: "Invalid or expired token"}
	}
	return identity, nil
}

func (f *fakeAuth) RequireRole(identity *model.Identity, role model.Role) error {
	if identity.Role != role {
		return &service.Error{Class: service.ErrForbidden, Message: "Forbidden"}
	}
	return nil
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{identities: map[string]*model.Identity{
		"patient-token":  {UserID: "p1", Role: model.RolePatient},
		"provider-token": {UserID: "d1", Role: model.RoleProvider},
	}}
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["message"]
}

func echoIdentity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ctxkeys.Identity(r.Context()).UserID))
	})
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(newFakeAuth())(echoIdentity())

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"no header", "", http.StatusUnauthorized, "Missing or invalid authorization header"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Missing or invalid authorization header"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "Missing or invalid authorization header"},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.message, message(t, rec))
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "bearer patient-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p1", rec.Body.String())
}

func TestRequireAuth_StoreFailureIs500(t *testing.T) {
	auth := newFakeAuth()
	auth.verifyErr = errors.New("database is locked")
	h := RequireAuth(auth)(echoIdentity())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer patient-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", message(t, rec))
}

func TestRequireRole(t *testing.T) {
	auth := newFakeAuth()
	h := Chain(echoIdentity(), RequireAuth(auth), RequireRole(auth, model.RolePatient))

	req := httptest.NewRequest(http.MethodGet, "/api/patient/dashboard", nil)
	req.Header.Set("Authorization", "Bearer provider-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", message(t, rec))

	req = httptest.NewRequest(http.MethodGet, "/api/patient/dashboard", nil)
	req.Header.Set("Authorization", "Bearer patient-token")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := Chain(mux, Metrics, RequestLogging)

	counter := metrics.HTTPRequests.WithLabelValues("GET", "GET /things/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestCORS(t *testing.T) {
	h := CORS("http://localhost:5173")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
