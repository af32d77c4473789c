// Package api 提供 Ecoleta 的 HTTP JSON 介面
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	apppoint "github.com/jackyeh168/ecoleta/src/internal/application/point"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/metrics"
)

// maxBodyBytes POST /points 請求體上限
const maxBodyBytes = 1 << 20

// Dependencies HTTP 層所需的 Use Case 與基礎設施
type Dependencies struct {
	ListPoints  *apppoint.ListPointsUseCase
	GetPoint    *apppoint.GetPointUseCase
	CreatePoint *apppoint.CreatePointUseCase
	ListItems   *apppoint.ListItemsUseCase

	// HealthCheck 供 /healthz 調用（通常為資料庫 ping）
	HealthCheck func(ctx context.Context) error

	// UploadsDir 品項圖示目錄，空字串時不提供 /uploads/
	UploadsDir string

	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Server HTTP handler 集合
type Server struct {
	deps   Dependencies
	logger *slog.Logger
}

// NewHandler 組裝路由與中介層
//
// 中介層順序（外 → 內）：recover → request id → CORS → logging → metrics → mux
func NewHandler(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{deps: deps, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /points", s.handleListPoints)
	mux.HandleFunc("GET /points/{id}", s.handleGetPoint)
	mux.HandleFunc("POST /points", s.handleCreatePoint)
	mux.HandleFunc("GET /items", s.handleListItems)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	if deps.UploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir))))
	}

	var handler http.Handler = mux
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
		handler = metricsMiddleware(deps.Metrics, handler)
	}
	handler = loggingMiddleware(logger, handler)
	handler = corsMiddleware(handler)
	handler = requestIDMiddleware(handler)
	handler = recoverMiddleware(logger, handler)

	return handler
}

// GET /points?city=&uf=&items=1,2
func (s *Server) handleListPoints(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := s.deps.ListPoints.Execute(r.Context(), apppoint.ListPointsQuery{
		City:  q.Get("city"),
		UF:    q.Get("uf"),
		Items: q.Get("items"),
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	resp := make([]PointResponse, 0, len(results))
	for _, p := range results {
		resp = append(resp, toPointResponse(p, false))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /points/{id}
func (s *Server) handleGetPoint(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetPoint.Execute(r.Context(), apppoint.GetPointQuery{ID: r.PathValue("id")})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	items := make([]ItemTitleResponse, 0, len(result.ItemTitles))
	for _, title := range result.ItemTitles {
		items = append(items, ItemTitleResponse{Title: title})
	}
	writeJSON(w, http.StatusOK, PointDetailResponse{
		Point: toPointResponse(result.Point, false),
		Items: items,
	})
}

// POST /points
func (s *Server) handleCreatePoint(w http.ResponseWriter, r *http.Request) {
	var cmd apppoint.CreatePointCommand
	if msg := decodeJSON(w, r, &cmd); msg != "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: msg})
		return
	}

	result, err := s.deps.CreatePoint.Execute(r.Context(), cmd)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toPointResponse(*result, true))
}

// GET /items
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	results, err := s.deps.ListItems.Execute(r.Context())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	resp := make([]ItemResponse, 0, len(results))
	for _, item := range results {
		resp = append(resp, ItemResponse{
			ID:       item.ID,
			Title:    item.Title,
			ImageURL: item.ImageURL,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthCheck != nil {
		if err := s.deps.HealthCheck(r.Context()); err != nil {
			s.logger.WarnContext(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// 請求體錯誤訊息
const (
	msgMalformedBody   = "Request body must be a valid JSON object."
	msgBodyTooLarge    = "Request body too large."
	msgUnsupportedType = "Content-Type must be application/json."
)

// decodeJSON 解碼單一 JSON 物件，失敗時返回給客戶端的訊息
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) string {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return msgUnsupportedType
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return msgBodyTooLarge
		}
		return msgMalformedBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return msgMalformedBody
	}
	return ""
}
