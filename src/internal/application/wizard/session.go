// Package wizard 實作收集據點註冊精靈
//
// Session 追蹤參考資料的載入狀態與使用者選擇，組合單一 payload 送交註冊 API
package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// LoadState 參考資料載入狀態
type LoadState string

const (
	LoadPending LoadState = "pending"
	LoadLoading LoadState = "loading"
	LoadReady   LoadState = "ready"
	LoadFailed  LoadState = "failed"
)

// Phase 精靈所處的階段
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseDone       Phase = "done"
)

// 文字欄位名稱
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldWhatsApp = "whatsapp"
)

// ConfirmationMessage 註冊成功的確認訊息
const ConfirmationMessage = "Ponto de coleta criado!"

// DefaultTimeout 未設定時每個載入與送出的逾時
const DefaultTimeout = 10 * time.Second

// Options Session 設定
type Options struct {
	// Timeout 每個載入（定位、品項、州、城市）與送出各自的逾時
	Timeout time.Duration

	// DefaultPosition 定位失敗或逾時時使用的位置
	DefaultPosition Position

	Logger *slog.Logger
}

// Snapshot Session 狀態的唯讀副本
type Snapshot struct {
	Phase Phase

	GeolocationState LoadState
	ItemsState       LoadState
	StatesState      LoadState
	CitiesState      LoadState

	InitialPosition Position
	Position        Position

	Items  []CatalogItem
	States []string
	Cities []string

	Name     string
	Email    string
	WhatsApp string
	UF       string
	City     string

	SelectedItems []int64
	Result        *RegisteredPoint
}

// Session 註冊精靈的一次操作
//
// 並發安全：所有狀態由 mu 保護；網路調用期間不持有鎖
type Session struct {
	catalog   ItemCatalog
	geo       GeoReference
	locator   Locator
	registrar PointRegistrar

	timeout         time.Duration
	defaultPosition Position
	logger          *slog.Logger

	mu sync.Mutex

	geoState    LoadState
	itemsState  LoadState
	statesState LoadState
	citiesState LoadState

	initialPosition Position
	items           []CatalogItem
	states          []string
	cities          []string
	citiesFor       string // cities 所屬的州
	citiesGen       uint64 // 每次選擇州時遞增，丟棄過期的城市載入結果

	name     string
	email    string
	whatsapp string
	uf       string
	city     string

	position    Position
	positionSet bool
	selected    []int64

	phase  Phase
	result *RegisteredPoint
}

// NewSession 創建精靈 Session
//
// locator 可為 nil（直接使用預設位置）
func NewSession(
	catalog ItemCatalog,
	geo GeoReference,
	locator Locator,
	registrar PointRegistrar,
	opts Options,
) *Session {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Session{
		catalog:         catalog,
		geo:             geo,
		locator:         locator,
		registrar:       registrar,
		timeout:         opts.Timeout,
		defaultPosition: opts.DefaultPosition,
		logger:          opts.Logger,
		geoState:        LoadPending,
		itemsState:      LoadPending,
		statesState:     LoadPending,
		citiesState:     LoadPending,
		phase:           PhaseEditing,
	}
}

// ===========================
// 載入參考資料
// ===========================

// Load 並行載入位置、品項與州列表
//
// 三個載入互相獨立：
// - 定位失敗或逾時：使用預設位置，不返回錯誤
// - 品項或州載入失敗：該項標記為 failed，返回第一個錯誤
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	s.geoState = LoadLoading
	s.itemsState = LoadLoading
	s.statesState = LoadLoading
	s.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		s.loadPosition(ctx)
		return nil
	})
	g.Go(func() error { return s.loadItems(ctx) })
	g.Go(func() error { return s.loadStates(ctx) })

	return g.Wait()
}

func (s *Session) loadPosition(ctx context.Context) {
	pos := s.defaultPosition
	if s.locator != nil {
		tctx, cancel := context.WithTimeout(ctx, s.timeout)
		located, err := s.locator.CurrentPosition(tctx)
		cancel()
		if err != nil {
			s.logger.WarnContext(ctx, "geolocation unavailable, using default position",
				"latitude", pos.Latitude,
				"longitude", pos.Longitude,
				"error", err,
			)
		} else {
			pos = located
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialPosition = pos
	s.geoState = LoadReady
	if !s.positionSet {
		s.position = pos
	}
}

func (s *Session) loadItems(ctx context.Context) error {
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	items, err := s.catalog.ListItems(tctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.itemsState = LoadFailed
		return fmt.Errorf("failed to load items: %w", err)
	}
	s.items = items
	s.itemsState = LoadReady
	return nil
}

func (s *Session) loadStates(ctx context.Context) error {
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	states, err := s.geo.ListStates(tctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.statesState = LoadFailed
		return fmt.Errorf("failed to load states: %w", err)
	}
	normalized := make([]string, 0, len(states))
	for _, uf := range states {
		normalized = append(normalized, strings.ToUpper(strings.TrimSpace(uf)))
	}
	s.states = normalized
	s.statesState = LoadReady
	return nil
}

// ===========================
// 使用者操作
// ===========================

// SelectUF 選擇州並載入其城市列表
//
// 選擇新的州會清除已選城市；過期的城市載入結果被丟棄
func (s *Session) SelectUF(ctx context.Context, uf string) error {
	uf = strings.ToUpper(strings.TrimSpace(uf))

	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.statesState != LoadReady {
		s.mu.Unlock()
		return ErrNotReady
	}
	if !containsString(s.states, uf) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownUF, uf)
	}
	s.uf = uf
	s.city = ""
	s.cities = nil
	s.citiesFor = ""
	s.citiesState = LoadLoading
	s.citiesGen++
	gen := s.citiesGen
	s.mu.Unlock()

	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	cities, err := s.geo.ListCities(tctx, uf)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.citiesGen {
		return nil
	}
	if err != nil {
		s.citiesState = LoadFailed
		return fmt.Errorf("failed to load cities for %s: %w", uf, err)
	}
	s.cities = cities
	s.citiesFor = uf
	s.citiesState = LoadReady
	return nil
}

// SelectCity 選擇城市（不區分大小寫，保存列表中的原始名稱）
func (s *Session) SelectCity(city string) error {
	city = strings.TrimSpace(city)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	if s.uf == "" {
		return ErrUFRequired
	}
	if s.citiesState != LoadReady {
		return ErrNotReady
	}
	for _, c := range s.cities {
		if strings.EqualFold(c, city) {
			s.city = c
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCity, city)
}

// SetField 編輯文字欄位（name、email、whatsapp）
func (s *Session) SetField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	switch field {
	case FieldName:
		s.name = value
	case FieldEmail:
		s.email = value
	case FieldWhatsApp:
		s.whatsapp = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// SetPosition 設定據點位置（地圖點擊）
func (s *Session) SetPosition(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return ErrInvalidPosition
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.position = Position{Latitude: latitude, Longitude: longitude}
	s.positionSet = true
	return nil
}

// ToggleItem 切換品項選擇（集合語義：切換兩次恢復原狀）
func (s *Session) ToggleItem(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	if s.itemsState != LoadReady {
		return ErrNotReady
	}
	if !s.hasItemLocked(id) {
		return fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}

	for i, v := range s.selected {
		if v == id {
			s.selected = append(s.selected[:i:i], s.selected[i+1:]...)
			return nil
		}
	}
	s.selected = append(s.selected, id)
	return nil
}

// ===========================
// 送出
// ===========================

// CanSubmit 是否滿足送出條件
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submittableLocked() == nil
}

// Submit 組合 payload 並調用註冊 API
//
// 成功：階段變為 done
// 失敗：返回錯誤，Session 保持可編輯
func (s *Session) Submit(ctx context.Context) (*RegisteredPoint, error) {
	s.mu.Lock()
	if err := s.submittableLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	submission := Submission{
		Name:      s.name,
		Email:     s.email,
		WhatsApp:  s.whatsapp,
		UF:        s.uf,
		City:      s.city,
		Latitude:  s.position.Latitude,
		Longitude: s.position.Longitude,
		Items:     append([]int64(nil), s.selected...),
	}
	s.phase = PhaseSubmitting
	s.mu.Unlock()

	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, err := s.registrar.RegisterPoint(tctx, submission)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil && result == nil {
		err = ErrEmptyRegistration
	}
	if err != nil {
		s.phase = PhaseEditing
		return nil, fmt.Errorf("failed to register point: %w", err)
	}
	s.phase = PhaseDone
	s.result = result
	s.logger.InfoContext(ctx, ConfirmationMessage, "point_id", result.ID)
	return result, nil
}

// Snapshot 返回目前狀態的副本
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Phase:            s.phase,
		GeolocationState: s.geoState,
		ItemsState:       s.itemsState,
		StatesState:      s.statesState,
		CitiesState:      s.citiesState,
		InitialPosition:  s.initialPosition,
		Position:         s.position,
		Items:            append([]CatalogItem(nil), s.items...),
		States:           append([]string(nil), s.states...),
		Cities:           append([]string(nil), s.cities...),
		Name:             s.name,
		Email:            s.email,
		WhatsApp:         s.whatsapp,
		UF:               s.uf,
		City:             s.city,
		SelectedItems:    append([]int64(nil), s.selected...),
		Result:           s.result,
	}
}

func (s *Session) editableLocked() error {
	switch s.phase {
	case PhaseSubmitting:
		return ErrSubmitInProgress
	case PhaseDone:
		return ErrAlreadySubmitted
	}
	return nil
}

func (s *Session) submittableLocked() error {
	if err := s.editableLocked(); err != nil {
		return err
	}
	if s.itemsState != LoadReady || s.statesState != LoadReady {
		return ErrNotReady
	}
	if s.uf == "" {
		return ErrUFRequired
	}
	if s.citiesState != LoadReady || s.citiesFor != s.uf {
		return ErrNotReady
	}
	if s.city == "" {
		return ErrCityRequired
	}
	if len(s.selected) == 0 {
		return ErrItemsRequired
	}
	return nil
}

func (s *Session) hasItemLocked(id int64) bool {
	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
