package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apppoint "github.com/jackyeh168/ecoleta/src/internal/application/point"
	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
)

// ===========================
// Response DTOs
// ===========================

// PointResponse 據點 JSON 表示
type PointResponse struct {
	ID        int64   `json:"id"`
	Image     string  `json:"image"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	WhatsApp  string  `json:"whatsapp"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	UF        string  `json:"uf"`
	Items     []int64 `json:"items,omitempty"`
}

// PointDetailResponse GET /points/{id} 的回應
type PointDetailResponse struct {
	Point PointResponse       `json:"point"`
	Items []ItemTitleResponse `json:"items"`
}

// ItemTitleResponse 據點詳情中的品項名稱
type ItemTitleResponse struct {
	Title string `json:"title"`
}

// ItemResponse GET /items 的元素
type ItemResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// ErrorResponse 錯誤回應；Errors 僅在欄位驗證失敗時出現
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

const internalErrorMessage = "Internal server error."

func toPointResponse(r apppoint.PointResult, withItems bool) PointResponse {
	resp := PointResponse{
		ID:        r.ID,
		Image:     r.Image,
		Name:      r.Name,
		Email:     r.Email,
		WhatsApp:  r.WhatsApp,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		City:      r.City,
		UF:        r.UF,
	}
	if withItems {
		resp.Items = r.ItemIDs
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError 將錯誤映射為 HTTP 回應
//
// 映射：
// - *ValidationError → 400，附欄位明細
// - *point.DomainError（不存在、品項不存在、值對象錯誤）→ 400
// - 其他 → 500，原因只寫入日誌
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var validationErr *apppoint.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Message: point.ErrValidationFailed.Message,
			Errors:  validationErr.Fields,
		})
		return
	}

	var domainErr *point.DomainError
	if errors.As(err, &domainErr) {
		logger.DebugContext(r.Context(), "request rejected",
			"code", string(domainErr.Code),
			"error", err,
		)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: domainErr.Message})
		return
	}

	logger.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: internalErrorMessage})
}
