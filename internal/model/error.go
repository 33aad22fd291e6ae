package model

import "errors"

var (
	ErrValidation            = errors.New("validation error")         // 400
	ErrUnknownSlot           = errors.New("unknown slot")             // 400
	ErrUnknownStatus         = errors.New("unknown status")           // 400
	ErrUnauthorized          = errors.New("unauthorized user")        // 403
	ErrOrderNotFound         = errors.New("order not found")          // 404
	ErrComponentNotFound     = errors.New("component not found")      // 404
	ErrSessionNotFound       = errors.New("build session not found")  // 404
	ErrOrderConflict         = errors.New("order conflict")           // 409
	ErrStaleWrite            = errors.New("order changed underneath") // 409
	ErrIncompatibleSelection = errors.New("incompatible selection")   // 409
	ErrInvalidTransition     = errors.New("invalid transition")       // 409
	ErrComponentsOutOfStock  = errors.New("components out of stock")  // 422
	ErrBadGateway            = errors.New("bad gateway")              // 502
	ErrServiceUnavailable    = errors.New("service unavailable")      // 503
)
