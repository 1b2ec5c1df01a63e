package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrNotConfigured = errors.New("api credentials not configured")
	ErrInvalidLeague = errors.New("invalid league")
)
