package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	apppoint "github.com/jackyeh168/ecoleta/src/internal/application/point"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/events"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/metrics"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testBaseURL = "http://eco.test"

type testServer struct {
	handler http.Handler
	db      *gorm.DB
	metrics *metrics.Metrics
}

// newTestServer 以真實 SQLite 資料庫組裝完整的 HTTP 堆疊
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := persistence.Open(persistence.DatabaseConfig{
		Driver:   persistence.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "api-test.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(db))
	t.Cleanup(func() { _ = persistence.Close(db) })

	uploads := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "lampadas.svg"), []byte("<svg/>"), 0o600))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(false)
	pointRepo := persistence.NewPointRepository(db)
	itemRepo := persistence.NewItemRepository(db)
	txManager := persistence.NewGORMTransactionManager(db)

	handler := NewHandler(Dependencies{
		ListPoints:  apppoint.NewListPointsUseCase(pointRepo),
		GetPoint:    apppoint.NewGetPointUseCase(pointRepo, itemRepo),
		CreatePoint: apppoint.NewCreatePointUseCase(pointRepo, itemRepo, txManager, events.NewLogPublisher(log, m), log),
		ListItems:   apppoint.NewListItemsUseCase(itemRepo, testBaseURL),
		HealthCheck: func(ctx context.Context) error { return persistence.Ping(ctx, db) },
		UploadsDir:  uploads,
		Metrics:     m,
		Logger:      log,
	})

	return &testServer{handler: handler, db: db, metrics: m}
}

func (s *testServer) do(t *testing.T, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

const examplePayload = `{
	"name": "Eco Center",
	"email": "a@b.com",
	"whatsapp": "1",
	"latitude": -23.5,
	"longitude": -46.6,
	"city": "SP",
	"uf": "SP",
	"items": [1, 2]
}`

func TestCreatePoint_ExamplePayload_RoundTrip(t *testing.T) {
	// Arrange
	s := newTestServer(t)

	// Act: 註冊
	rec := s.do(t, http.MethodPost, "/points", examplePayload)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created PointResponse
	decodeBody(t, rec, &created)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Eco Center", created.Name)
	assert.Equal(t, "a@b.com", created.Email)
	assert.Equal(t, "1", created.WhatsApp)
	assert.Equal(t, -23.5, created.Latitude)
	assert.Equal(t, -46.6, created.Longitude)
	assert.Equal(t, "SP", created.City)
	assert.Equal(t, "SP", created.UF)
	assert.NotEmpty(t, created.Image)
	assert.Equal(t, []int64{1, 2}, created.Items)

	// Act: 查詢
	rec = s.do(t, http.MethodGet, "/points/"+jsonNumber(created.ID), "")

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var detail PointDetailResponse
	decodeBody(t, rec, &detail)
	assert.Equal(t, created.ID, detail.Point.ID)
	assert.Equal(t, "Eco Center", detail.Point.Name)
	assert.Equal(t, []ItemTitleResponse{{Title: "Lâmpadas"}, {Title: "Pilhas e Baterias"}}, detail.Items)
}

func TestListPoints_FiltersByLocationAndItems(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/points", examplePayload).Code)
	other := strings.Replace(examplePayload, `"uf": "SP"`, `"uf": "RJ"`, 1)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/points", other).Code)

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"match on both items", "/points?city=SP&uf=SP&items=1,2", 1},
		{"match on one item", "/points?city=SP&uf=SP&items=2,5", 1},
		{"no overlapping item", "/points?city=SP&uf=SP&items=3", 0},
		{"other state", "/points?city=SP&uf=MG&items=1", 0},
		{"lowercase uf", "/points?city=SP&uf=rj&items=1", 1},
		{"empty items", "/points?city=SP&uf=SP&items=", 0},
		{"missing items", "/points?city=SP&uf=SP", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tt.query, "")

			require.Equal(t, http.StatusOK, rec.Code)
			var points []PointResponse
			decodeBody(t, rec, &points)
			assert.Len(t, points, tt.expected)
			for _, p := range points {
				assert.Equal(t, "SP", p.City)
				assert.Nil(t, p.Items)
			}
		})
	}
}

func TestListPoints_MalformedItems_BadRequest(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/points?city=SP&uf=SP&items=1,x", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Message)
}

func TestGetPoint_Unknown_ReturnsPointNotFound(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/points/999", "/points/abc", "/points/0"} {
		rec := s.do(t, http.MethodGet, target, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		var resp ErrorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Point not found.", resp.Message, target)
	}
}

func TestCreatePoint_ValidationFailure_ReturnsFieldErrors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/points", `{"name":"","email":"nope","latitude":100,"longitude":0,"city":"SP","uf":"SPX","items":[]}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Validation failed.", resp.Message)
	assert.Equal(t, "required", resp.Errors["name"])
	assert.Equal(t, "email", resp.Errors["email"])
	assert.Equal(t, "required", resp.Errors["whatsapp"])
	assert.Equal(t, "lte", resp.Errors["latitude"])
	assert.Equal(t, "len", resp.Errors["uf"])
	assert.Equal(t, "min", resp.Errors["items"])
	assert.NotContains(t, resp.Errors, "longitude")
	assert.NotContains(t, resp.Errors, "city")
}

func TestCreatePoint_UnknownItem_NothingPersisted(t *testing.T) {
	s := newTestServer(t)
	payload := strings.Replace(examplePayload, "[1, 2]", "[1, 42]", 1)

	rec := s.do(t, http.MethodPost, "/points", payload)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "One or more items do not exist.", resp.Message)

	var count int64
	require.NoError(t, s.db.Table("points").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreatePoint_ConcurrentRequests_AllSucceed(t *testing.T) {
	// Arrange
	s := newTestServer(t)
	const n = 40

	// Act
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/points", strings.NewReader(examplePayload))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	// Assert
	for i, code := range codes {
		assert.Equal(t, http.StatusOK, code, "request %d", i)
	}
	var count int64
	require.NoError(t, s.db.Table("points").Count(&count).Error)
	assert.Equal(t, int64(n), count)
}

func TestCreatePoint_MalformedBody(t *testing.T) {
	s := newTestServer(t)

	tests := map[string]string{
		"not json":         "{name:",
		"trailing data":    examplePayload + "{}",
		"wrong type":       `{"latitude":"north"}`,
		"array not object": `[1,2]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/points", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			decodeBody(t, rec, &resp)
			assert.Equal(t, msgMalformedBody, resp.Message)
		})
	}
}

func TestCreatePoint_WrongContentType(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/points", bytes.NewBufferString(examplePayload))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgUnsupportedType)
}

func TestListItems_ReturnsCatalogWithImageURL(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/items", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var items []ItemResponse
	decodeBody(t, rec, &items)
	require.Len(t, items, 6)
	assert.Equal(t, ItemResponse{
		ID:       1,
		Title:    "Lâmpadas",
		ImageURL: testBaseURL + "/uploads/lampadas.svg",
	}, items[0])
}

func TestUploads_ServesStaticFiles(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/uploads/lampadas.svg", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<svg/>", rec.Body.String())
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/uploads/missing.svg", "").Code)
}

func TestMiddleware_CORSPreflightAndRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodOptions, "/points", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = s.do(t, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodDelete, "/points/1", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	require.NoError(t, persistence.Close(s.db))
	rec = s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestInternalError_GenericMessage(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, persistence.Close(s.db))

	rec := s.do(t, http.MethodGet, "/items", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error."}`, rec.Body.String())
}

func TestMetrics_ExposesRequestCounters(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/items", "")
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/points", examplePayload).Code)

	rec := s.do(t, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `ecoleta_http_requests_total{method="GET",route="GET /items",status="200"} 1`)
	assert.Contains(t, body, "ecoleta_points_registered_total 1")
}

func jsonNumber(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
