package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fichador/fichador-backend/internal/domain/schedule"
	"github.com/fichador/fichador-backend/internal/pkg/jwt"
	"github.com/fichador/fichador-backend/internal/repository/memory"
	authService "github.com/fichador/fichador-backend/internal/service/auth"
	historyService "github.com/fichador/fichador-backend/internal/service/history"
	syncService "github.com/fichador/fichador-backend/internal/service/sync"
	workdayService "github.com/fichador/fichador-backend/internal/service/workday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	userRepo := memory.NewUserRepository()
	workdayRepo := memory.NewWorkdayRepository()
	policy := schedule.DefaultPolicy()
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h", "24h")

	authSvc := authService.NewAuthService(userRepo, jwtService)
	workdaySvc := workdayService.NewWorkdayService(workdayRepo, policy, workdayService.DefaultPendingTTL)
	historySvc := historyService.NewHistoryService(workdayRepo, policy)
	syncSvc := syncService.NewSyncService(workdayRepo, userRepo, nil)

	return NewRouter(
		RouterConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		NewAuthHandler(jwtService, authSvc),
		NewWorkdayHandler(workdaySvc),
		NewHistoryHandler(historySvc),
		NewSyncHandler(syncSvc),
		NewScheduleHandler(policy),
	)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, router http.Handler, username string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"password": "secret-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	return envelope.Data.AccessToken
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "maría!",
		"password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "maria")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "maria",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/workday/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshTokenRejectedOnProtectedRoute(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "maria")

	// Mint a refresh token and present it as a bearer token.
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h", "24h")
	refresh, _, err := jwtService.GenerateRefreshToken("u1", "maria")
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/workday/today", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPunchFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "maria")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/workday/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var today struct {
		Data struct {
			State string `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &today))
	assert.Equal(t, "out", today.Data.State)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/punch/", token, map[string]string{"type": "bogus"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestEditDayAndHistoryOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "maria")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/workday/2026-09-02", token, map[string]any{
		"entries": []map[string]string{
			{"type": "enter", "time": "08:00"},
			{"type": "lunch_out", "time": "14:00"},
			{"type": "lunch_back", "time": "14:45"},
			{"type": "exit", "time": "17:45"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var day struct {
		Data struct {
			WorkedMinutes int    `json:"worked_minutes"`
			WorkedDisplay string `json:"worked_display"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &day))
	assert.Equal(t, 520, day.Data.WorkedMinutes)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/workday/2026-09-02", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/history/week?date=2026-09-02", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var week struct {
		Data struct {
			WeekStart    string `json:"week_start"`
			TotalMinutes int    `json:"total_minutes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &week))
	assert.Equal(t, "2026-08-31", week.Data.WeekStart)
	assert.Equal(t, 520, week.Data.TotalMinutes)
}

func TestExportWeekCSVOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "maria")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/workday/2026-09-02", token, map[string]any{
		"entries": []map[string]string{
			{"type": "enter", "time": "08:00"},
			{"type": "exit", "time": "17:00"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/export/week.csv?date=2026-09-02", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "jornada_semanal_2026-09-02.csv")
	assert.Contains(t, rec.Body.String(), "Fecha,Entrada,Salida Comer")
	assert.Contains(t, rec.Body.String(), "2026-09-02,08:00")
}

func TestGetDayNotFound(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "maria")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/workday/2020-01-01", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSyncDisabledOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "maria")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sync/", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/sync/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status struct {
		Data struct {
			Enabled bool `json:"enabled"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Data.Enabled)
}

func TestScheduleEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "maria")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/schedule", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data struct {
			Policy struct {
				Weekday struct {
					RequiredMinutes int `json:"required_minutes"`
				} `json:"weekday"`
			} `json:"policy"`
			OvertimeReasons map[string]string `json:"overtime_reasons"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 510, payload.Data.Policy.Weekday.RequiredMinutes)
	assert.Equal(t, "Reunión urgente", payload.Data.OvertimeReasons["reunion_urgente"])
}
