package wizard

import "errors"

// 精靈操作錯誤
var (
	ErrNotReady            = errors.New("wizard: reference data not loaded")
	ErrUFRequired          = errors.New("wizard: a state must be selected")
	ErrCityRequired        = errors.New("wizard: a city must be selected")
	ErrItemsRequired       = errors.New("wizard: at least one item must be selected")
	ErrUnknownUF           = errors.New("wizard: unknown state")
	ErrUnknownCity         = errors.New("wizard: unknown city for the selected state")
	ErrUnknownItem         = errors.New("wizard: unknown item")
	ErrUnknownField        = errors.New("wizard: unknown field")
	ErrInvalidPosition     = errors.New("wizard: position out of range")
	ErrSubmitInProgress    = errors.New("wizard: submission in progress")
	ErrAlreadySubmitted    = errors.New("wizard: point already submitted")
	ErrEmptyRegistration   = errors.New("wizard: registrar returned no point")
)
