// Package ibge 讀取 IBGE 地區 API（州與城市列表）
package ibge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jackyeh168/ecoleta/src/internal/application/wizard"
)

// DefaultBaseURL IBGE 公開服務網址
const DefaultBaseURL = "https://servicodados.ibge.gov.br"

// Client IBGE localidades API 客戶端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ wizard.GeoReference = (*Client)(nil)

// NewClient 創建客戶端；httpClient 為 nil 時使用 15 秒逾時的預設客戶端
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type stateResponse struct {
	ID    int    `json:"id"`
	Sigla string `json:"sigla"`
	Nome  string `json:"nome"`
}

type cityResponse struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

// ListStates 返回全部州代碼（依名稱排序）
func (c *Client) ListStates(ctx context.Context) ([]string, error) {
	var states []stateResponse
	if err := c.getJSON(ctx, "/api/v1/localidades/estados?orderBy=nome", &states); err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}

	ufs := make([]string, 0, len(states))
	for _, s := range states {
		ufs = append(ufs, s.Sigla)
	}
	return ufs, nil
}

// ListCities 返回州內全部城市名稱（依名稱排序）
func (c *Client) ListCities(ctx context.Context, uf string) ([]string, error) {
	path := fmt.Sprintf("/api/v1/localidades/estados/%s/municipios?orderBy=nome", url.PathEscape(uf))

	var cities []cityResponse
	if err := c.getJSON(ctx, path, &cities); err != nil {
		return nil, fmt.Errorf("failed to list cities for %s: %w", uf, err)
	}

	names := make([]string, 0, len(cities))
	for _, city := range cities {
		names = append(names, city.Nome)
	}
	return names, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
