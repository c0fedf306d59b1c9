package config

import (
	"errors"
)

// Error kinds the loader wraps its failures in. Callers branch on them with
// errors.Is: ErrLoadConfig means the file or env layers could not be read,
// ErrInvalidConfig means the resolved values fail validation.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
