// Package apiclient 是 Ecoleta HTTP API 的客戶端（供註冊精靈使用）
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/jackyeh168/ecoleta/src/internal/application/wizard"
)

// APIError API 返回的非 200 回應
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

// Error 實現 error 接口
func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+e.Fields[k])
	}
	return fmt.Sprintf("api: %d %s (%s)", e.StatusCode, e.Message, strings.Join(parts, ", "))
}

// Client Ecoleta API 客戶端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var (
	_ wizard.ItemCatalog    = (*Client)(nil)
	_ wizard.PointRegistrar = (*Client)(nil)
)

// NewClient 創建客戶端；httpClient 為 nil 時使用 15 秒逾時的預設客戶端
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type itemPayload struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

type createPointPayload struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	WhatsApp  string  `json:"whatsapp"`
	UF        string  `json:"uf"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Items     []int64 `json:"items"`
}

type pointPayload struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	City  string  `json:"city"`
	UF    string  `json:"uf"`
	Items []int64 `json:"items"`
}

type errorPayload struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// ListItems GET /items
func (c *Client) ListItems(ctx context.Context) ([]wizard.CatalogItem, error) {
	var payload []itemPayload
	if err := c.do(ctx, http.MethodGet, "/items", nil, &payload); err != nil {
		return nil, err
	}

	items := make([]wizard.CatalogItem, 0, len(payload))
	for _, p := range payload {
		items = append(items, wizard.CatalogItem{ID: p.ID, Title: p.Title, ImageURL: p.ImageURL})
	}
	return items, nil
}

// RegisterPoint POST /points
func (c *Client) RegisterPoint(ctx context.Context, s wizard.Submission) (*wizard.RegisteredPoint, error) {
	body := createPointPayload{
		Name:      s.Name,
		Email:     s.Email,
		WhatsApp:  s.WhatsApp,
		UF:        s.UF,
		City:      s.City,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Items:     s.Items,
	}

	var created pointPayload
	if err := c.do(ctx, http.MethodPost, "/points", body, &created); err != nil {
		return nil, err
	}
	return &wizard.RegisteredPoint{
		ID:    created.ID,
		Name:  created.Name,
		City:  created.City,
		UF:    created.UF,
		Items: created.Items,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload errorPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
			apiErr.Message = payload.Message
			apiErr.Fields = payload.Errors
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
