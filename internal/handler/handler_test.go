package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/UserRegistry/internal/core/ports"
	"github.com/GoArmGo/UserRegistry/internal/database/memory"
	"github.com/GoArmGo/UserRegistry/internal/domain"
	"github.com/GoArmGo/UserRegistry/internal/metrics"
	"github.com/GoArmGo/UserRegistry/internal/usecase"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type testEnv struct {
	router  http.Handler
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T, storage ports.UserStorage) *testEnv {
	t.Helper()
	if storage == nil {
		storage = memory.NewUserStorage(discard)
	}
	m := metrics.New()
	uc := usecase.NewUserUseCase(storage, nil, m, usecase.Options{
		StoreTimeout: time.Second,
		BcryptCost:   4,
	}, discard)
	router := NewRouter(NewUserHandler(uc, discard), m, RouterOptions{
		RequestTimeout:     5 * time.Second,
		CORSAllowedOrigins: []string{"*"},
	}, discard)
	return &testEnv{router: router, metrics: m}
}

func (e *testEnv) do(method, path string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func registration(email, phone string) string {
	b, _ := json.Marshal(map[string]any{
		"firstName":       "Jo",
		"lastName":        "Doe",
		"email":           email,
		"phoneNo":         phone,
		"createPassword":  "Abc123!@",
		"confirmPassword": "Abc123!@",
	})
	return string(b)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorFields(t *testing.T, body map[string]any) []string {
	t.Helper()
	raw, ok := body["errors"].([]any)
	require.True(t, ok, "errors must be a list")
	fields := make([]string, 0, len(raw))
	for _, e := range raw {
		entry := e.(map[string]any)
		field, _ := entry["field"].(string)
		fields = append(fields, field)
	}
	return fields
}

func TestRegister_Created(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodPost, "/api/auth/register", registration("jo@x.com", "1234567890"))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "jo@x.com", data["email"])
	assert.Equal(t, "Jo", data["firstName"])
	assert.NotEmpty(t, data["id"])
	for key := range data {
		assert.NotContains(t, strings.ToLower(key), "password")
	}
	assert.NotContains(t, rec.Body.String(), "Abc123!@")
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Registrations.WithLabelValues(metrics.OutcomeCreated)))
}

func TestRegister_ValidationFailure(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodPost, "/api/auth/register", `{"firstName":"J","email":"nope","phoneNo":"12"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, []string{
		domain.FieldFirstName,
		domain.FieldLastName,
		domain.FieldEmail,
		domain.FieldPhoneNo,
		domain.FieldCreatePassword,
		domain.FieldConfirmPassword,
	}, errorFields(t, body))
}

func TestRegister_InvalidBody(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, raw := range []string{
		"{not json",
		`["array"]`,
		`"string"`,
		"",
		registration("jo@x.com", "1234567890") + " garbage{",
		registration("jo@x.com", "1234567890") + `{"a":1}`,
	} {
		rec := env.do(http.MethodPost, "/api/auth/register", raw)

		require.Equal(t, http.StatusBadRequest, rec.Code, raw)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, []string{"body"}, errorFields(t, body), raw)
	}

	list := decode(t, env.do(http.MethodGet, "/api/auth/users", ""))
	assert.Equal(t, []any{}, list["data"], "rejected bodies must not create users")
}

func TestRegister_Conflicts(t *testing.T) {
	env := newTestEnv(t, nil)
	require.Equal(t, http.StatusCreated,
		env.do(http.MethodPost, "/api/auth/register", registration("jo@x.com", "1234567890")).Code)

	tests := []struct {
		name    string
		email   string
		phone   string
		field   string
		message string
	}{
		{"same email", "jo@x.com", "0987654321", domain.FieldEmail, "Email is already registered"},
		{"same phone", "other@x.com", "1234567890", domain.FieldPhoneNo, "Phone number is already registered"},
		{"both match prefers email", "jo@x.com", "1234567890", domain.FieldEmail, "Email is already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/auth/register", registration(tt.email, tt.phone))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			errs := body["errors"].([]any)
			require.Len(t, errs, 1)
			entry := errs[0].(map[string]any)
			assert.Equal(t, tt.field, entry["field"])
			assert.Equal(t, tt.message, entry["message"])
		})
	}
}

func TestRegister_ConcurrentSamePhone(t *testing.T) {
	env := newTestEnv(t, nil)

	const attempts = 10
	codes := make([]int, attempts)
	bodies := make([]string, attempts)
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			rec := env.do(http.MethodPost, "/api/auth/register", registration(fmt.Sprintf("user%d@x.com", i), "5555555555"))
			codes[i] = rec.Code
			bodies[i] = rec.Body.String()
		}(i)
	}
	close(start)
	wg.Wait()

	created := 0
	for i, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
			assert.Contains(t, bodies[i], `"field":"phoneNo"`)
		default:
			t.Fatalf("unexpected status %d: %s", code, bodies[i])
		}
	}
	assert.Equal(t, 1, created)

	list := decode(t, env.do(http.MethodGet, "/api/auth/users", ""))
	assert.Len(t, list["data"], 1)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t, nil)

	t.Run("empty store returns empty list", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/auth/users", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Users retrieved successfully", body["message"])
		assert.Equal(t, []any{}, body["data"])
	})

	t.Run("round trip", func(t *testing.T) {
		created := env.do(http.MethodPost, "/api/auth/register", registration("jo@x.com", "1234567890"))
		require.Equal(t, http.StatusCreated, created.Code)
		createdData := decode(t, created)["data"].(map[string]any)

		rec := env.do(http.MethodGet, "/api/auth/users", "")

		require.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec)["data"].([]any)
		require.Len(t, data, 1)
		user := data[0].(map[string]any)
		assert.Equal(t, "Jo", user["firstName"])
		assert.Equal(t, "Doe", user["lastName"])
		assert.Equal(t, "jo@x.com", user["email"])
		assert.Equal(t, "1234567890", user["phoneNo"])
		assert.Equal(t, createdData["id"], user["id"])
		assert.Equal(t, createdData["createdAt"], user["createdAt"])
		assert.NotContains(t, rec.Body.String(), "password")
	})
}

type failingStorage struct{}

func (failingStorage) FindByEmailOrPhone(context.Context, string, string) (*domain.User, error) {
	return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
}

func (failingStorage) Create(context.Context, *domain.User) error {
	return errors.New("dial tcp 10.0.0.5:5432: connection refused")
}

func (failingStorage) ListAll(context.Context) ([]domain.User, error) {
	return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
}

func TestServerErrorsAreGeneric(t *testing.T) {
	env := newTestEnv(t, failingStorage{})

	for _, rec := range []*httptest.ResponseRecorder{
		env.do(http.MethodPost, "/api/auth/register", registration("jo@x.com", "1234567890")),
		env.do(http.MethodGet, "/api/auth/users", ""),
	} {
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Internal server error", body["message"])
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	}
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/unknown"},
		{http.MethodDelete, "/api/auth/users"},
		{http.MethodGet, "/api/auth/register"},
	} {
		rec := env.do(tc.method, tc.path, "")

		require.Equal(t, http.StatusNotFound, rec.Code, tc.path)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Route not found", body["message"])
		assert.Equal(t, tc.path, body["path"])
	}
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", decode(t, rec)["message"])

	rec = env.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `userregistry_http_requests_total{method="GET",status="200"}`)
}

type panickingUseCase struct{}

func (panickingUseCase) Register(context.Context, map[string]any) (*domain.User, error) {
	panic("boom")
}

func (panickingUseCase) ListUsers(context.Context) ([]domain.User, error) {
	panic("boom")
}

func TestRecovererRespondsWithEnvelope(t *testing.T) {
	router := NewRouter(NewUserHandler(panickingUseCase{}, discard), nil, RouterOptions{}, discard)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/users", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&body))
	assert.Equal(t, "Internal server error", body["message"])
}
