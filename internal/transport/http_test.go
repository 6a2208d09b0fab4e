package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apexautolab/leadapi/internal/auth"
	"github.com/apexautolab/leadapi/internal/domain/lead"
	"github.com/apexautolab/leadapi/internal/sqlite"
	"github.com/apexautolab/leadapi/internal/transport"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct{}

func (stubNotifier) LeadCreated(context.Context, *lead.Lead) error { return nil }

func newTestRouter(t *testing.T, adminUser, adminPass string) http.Handler {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := auth.NewMemoryStore()
	sessions := auth.NewService(adminUser, adminPass, store)
	leads := lead.NewService(sqlite.NewLeadRepository(db), stubNotifier{}, logger)

	return transport.NewRouter(leads, sessions, store, nil, logger)
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func loginAdmin(t *testing.T, handler http.Handler) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/admin/login", "",
		map[string]string{"username": "admin", "password": "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	handler := newTestRouter(t, "admin", "s3cret")

	rec := doJSON(t, handler, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK   bool   `json:"ok"`
		Time string `json:"time"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.OK)
	require.NotEmpty(t, resp.Time)
}

func TestCreateLead(t *testing.T) {
	handler := newTestRouter(t, "admin", "s3cret")

	rec := doJSON(t, handler, http.MethodPost, "/api/lead", "",
		map[string]string{"phone": "+380501234567", "name": "Ivan"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK bool  `json:"ok"`
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.OK)
	require.Equal(t, int64(1), resp.ID)
}

func TestCreateLead_InvalidPhone(t *testing.T) {
	handler := newTestRouter(t, "admin", "s3cret")

	for _, body := range []map[string]string{
		{"name": "Ivan"},
		{"phone": "12345"},
		{"phone": "   12 3   "},
	} {
		rec := doJSON(t, handler, http.MethodPost, "/api/lead", "", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"error":"Invalid phone"}`, rec.Body.String())
	}

	// Nothing persisted.
	token := loginAdmin(t, handler)
	rec := doJSON(t, handler, http.MethodGet, "/api/admin/leads", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"rows":[]}`, rec.Body.String())
}

func TestCreateLead_AcceptsMessageAlias(t *testing.T) {
	handler := newTestRouter(t, "admin", "s3cret")
	token := loginAdmin(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/lead", "",
		map[string]string{"phone": "+380501234567", "message": "legacy field"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/admin/leads/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Row lead.Lead `json:"row"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Row.Message)
	require.Equal(t, "legacy field", *resp.Row.Message)
}

func TestLogin_BadCredentials(t *testing.T) {
	handler := newTestRouter(t, "admin", "s3cret")

	rec := doJSON(t, handler, http.MethodPost, "/api/admin/login", "",
		map[string]string{"username": "admin", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"Bad credentials"}`, rec.Body.String())
}

func TestLogin_MissingServerConfig(t *testing.T) {
	handler := newTestRouter(t, "", "")

	rec := doJSON(t, handler, http.MethodPost, "/api/admin/login", "",
		map[string]string{"username": "admin", "password": "s3cret"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"Admin credentials missing"}`, rec.Body.String())
}

func TestAdminRoutes_RequireAuth(t *testing.T) {
	handler := newTestRouter(t, "admin", "s3cret")

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/leads"},
		{http.MethodGet, "/api/admin/leads/1"},
		{http.MethodPatch, "/api/admin/leads/1"},
	} {
		rec := doJSON(t, handler, route.method, route.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
		require.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	}
}

func TestLeadLifecycle(t *testing.T) {
	handler := newTestRouter(t, "admin", "s3cret")

	rec := doJSON(t, handler, http.MethodPost, "/api/lead", "",
		map[string]string{"phone": "+380501234567", "name": "Ivan", "car": "Audi A6", "msg": "полірування"})
	require.Equal(t, http.StatusOK, rec.Code)

	token := loginAdmin(t, handler)

	// Listing returns the reduced projection.
	rec = doJSON(t, handler, http.MethodGet, "/api/admin/leads", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Rows []lead.LeadRef `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Rows, 1)
	require.Equal(t, int64(1), list.Rows[0].ID)
	require.Equal(t, "new", list.Rows[0].Status)

	// Full detail only through Get.
	rec = doJSON(t, handler, http.MethodGet, "/api/admin/leads/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Row lead.Lead `json:"row"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "new", got.Row.Status)
	require.Equal(t, "Ivan", *got.Row.Name)
	require.Nil(t, got.Row.InternalNote)

	// Partial update: status only, note untouched.
	rec = doJSON(t, handler, http.MethodPatch, "/api/admin/leads/1", token,
		map[string]string{"status": "contacted"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "contacted", got.Row.Status)
	require.Nil(t, got.Row.InternalNote)

	// Note update keeps the status.
	rec = doJSON(t, handler, http.MethodPatch, "/api/admin/leads/1", token,
		map[string]string{"internal_note": "passed to workshop"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "contacted", got.Row.Status)
	require.Equal(t, "passed to workshop", *got.Row.InternalNote)

	// Clearing the status resets it to "new".
	rec = doJSON(t, handler, http.MethodPatch, "/api/admin/leads/1", token,
		map[string]string{"status": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "new", got.Row.Status)
}

func TestListLeads_Filters(t *testing.T) {
	handler := newTestRouter(t, "admin", "s3cret")
	token := loginAdmin(t, handler)

	for _, body := range []map[string]string{
		{"phone": "+380555000111", "name": "Petro"},
		{"phone": "+380671112233", "name": "Olena"},
		{"phone": "+380671119999", "car": "VW 555"},
	} {
		rec := doJSON(t, handler, http.MethodPost, "/api/lead", "", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/admin/leads?q=555", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Rows []lead.LeadRef `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Rows, 2)
	require.Equal(t, int64(3), list.Rows[0].ID)
	require.Equal(t, int64(1), list.Rows[1].ID)

	// Non-numeric limit falls back to the default instead of failing.
	rec = doJSON(t, handler, http.MethodGet, "/api/admin/leads?limit=abc", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Rows, 3)
}

func TestGetLead_NotFound(t *testing.T) {
	handler := newTestRouter(t, "admin", "s3cret")
	token := loginAdmin(t, handler)

	for _, path := range []string{"/api/admin/leads/99", "/api/admin/leads/abc"} {
		rec := doJSON(t, handler, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		require.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
	}
}

func TestUpdateLead_NotFound(t *testing.T) {
	handler := newTestRouter(t, "admin", "s3cret")
	token := loginAdmin(t, handler)

	rec := doJSON(t, handler, http.MethodPatch, "/api/admin/leads/99", token,
		map[string]string{"status": "contacted"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSBlockedAtEdge(t *testing.T) {
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := auth.NewMemoryStore()
	sessions := auth.NewService("admin", "s3cret", store)
	leads := lead.NewService(sqlite.NewLeadRepository(db), stubNotifier{}, logger)
	handler := transport.NewRouter(leads, sessions, store, []string{"https://apexautolab.com"}, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/lead", bytes.NewReader([]byte(`{"phone":"+380501234567"}`)))
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"error":"CORS blocked"}`, rec.Body.String())
}
