package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"pillar2/config"
	"pillar2/internal/app"
	sessionController "pillar2/internal/controllers/session"
	"pillar2/internal/handlers/middleware"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t      *testing.T
	server *fiber.App
	cookie string
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	application, err := app.NewWithConfig(config.Config{
		ServerPort:        8288,
		GeneralVersion:    "test",
		DatabaseDbPath:    ":memory:",
		SessionTTLMinutes: 60,
		GeneratorSeed:     7,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	server := fiber.New()
	require.NoError(t, Router(server, application))

	return &testClient{t: t, server: server}
}

func (tc *testClient) do(method, path string) (*http.Response, []byte) {
	tc.t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if tc.cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SESSION_COOKIE, Value: tc.cookie})
	}

	resp, err := tc.server.Test(req, -1)
	require.NoError(tc.t, err)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SESSION_COOKIE {
			tc.cookie = cookie.Value
		}
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(tc.t, err)
	return resp, body
}

func (tc *testClient) doJSON(method, path string, out any) *http.Response {
	tc.t.Helper()

	resp, body := tc.do(method, path)
	require.NoError(tc.t, json.Unmarshal(body, out), string(body))
	return resp
}

func TestHealth(t *testing.T) {
	client := newTestClient(t)

	var body map[string]any
	resp := client.doJSON(http.MethodGet, "/api/health", &body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestSessionLifecycle(t *testing.T) {
	client := newTestClient(t)

	var started struct {
		Message string                        `json:"message"`
		Session sessionController.SessionView `json:"session"`
	}
	resp := client.doJSON(http.MethodPost, "/api/session", &started)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotEmpty(t, client.cookie)
	assert.Equal(t, client.cookie, started.Session.ID)
	assert.Equal(t, 7, started.Session.Remaining)
	assert.Equal(t, "empty", started.Session.Phase)

	var run sessionController.RunResult
	resp = client.doJSON(http.MethodPost, "/api/session/run", &run)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "6 runs remaining.", run.Message)
	assert.Equal(t, 6, run.Remaining)
	assert.Equal(t, started.Session.StartDate, run.Date)
	assert.GreaterOrEqual(t, run.Generated, 100)
	assert.LessOrEqual(t, run.Generated, 200)

	var summary struct {
		Summary struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	client.doJSON(http.MethodGet, "/api/session/summary", &summary)
	assert.Equal(t, run.Generated, summary.Summary.Total)

	var preview struct {
		Preview sessionController.Preview `json:"preview"`
	}
	client.doJSON(http.MethodGet, "/api/session/preview", &preview)
	assert.Len(t, preview.Preview.Lines, 10)
	assert.Len(t, preview.Preview.Columns, 9)

	var records struct {
		Page sessionController.RecordsPage `json:"page"`
	}
	client.doJSON(http.MethodGet, "/api/session/records?limit=3&offset=1", &records)
	assert.Len(t, records.Page.Records, 3)
	assert.Equal(t, int64(run.Generated), records.Page.Total)

	resp, body := client.do(http.MethodGet, "/api/session/download")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "covid_testing_data.csv")
	lines := strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
	assert.Len(t, lines, run.Generated)
	assert.Len(t, strings.Split(lines[0], ","), 9)

	resp, body = client.do(http.MethodGet, "/api/session/download.parquet")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "PAR1"))

	var reset struct {
		Message string                        `json:"message"`
		Session sessionController.SessionView `json:"session"`
	}
	client.doJSON(http.MethodPost, "/api/session/reset", &reset)
	assert.Equal(t, "Session data reset.", reset.Message)
	assert.Equal(t, 0, reset.Session.RunCount)
	assert.Zero(t, reset.Session.Summary.Total)
}

func TestRunUntilLimit(t *testing.T) {
	client := newTestClient(t)

	var run sessionController.RunResult
	for i := range 7 {
		run = sessionController.RunResult{}
		client.doJSON(http.MethodPost, "/api/session/run", &run)
		assert.Equal(t, 6-i, run.Remaining)
	}
	assert.True(t, run.LimitReached)
	assert.Equal(t, sessionController.MESSAGE_LIMIT_REACHED, run.Message)
	total := run.Summary.Total

	var extra sessionController.RunResult
	resp := client.doJSON(http.MethodPost, "/api/session/run", &extra)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, extra.LimitReached)
	assert.Zero(t, extra.Generated)
	assert.Equal(t, total, extra.Summary.Total)
}

func TestRecords_BadQuery(t *testing.T) {
	client := newTestClient(t)

	resp, _ := client.do(http.MethodGet, "/api/session/records?limit=abc")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSessionsAreIsolated(t *testing.T) {
	first := newTestClient(t)
	first.doJSON(http.MethodPost, "/api/session/run", &sessionController.RunResult{})

	second := &testClient{t: t, server: first.server}
	var view struct {
		Session sessionController.SessionView `json:"session"`
	}
	second.doJSON(http.MethodPost, "/api/session", &view)

	assert.NotEqual(t, first.cookie, second.cookie)
	assert.Equal(t, 0, view.Session.RunCount)
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	client := newTestClient(t)

	resp, _ := client.do(http.MethodGet, "/ws")
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
