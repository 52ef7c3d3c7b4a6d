package chasecam

import "errors"

var (
	ErrMissingNode   = errors.New("chasecam: missing scene node")
	ErrMissingCaster = errors.New("chasecam: missing collision caster")
	ErrInvalidConfig = errors.New("chasecam: invalid config")
)
