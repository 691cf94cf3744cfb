package model

import "errors"

// Sentinel errors shared by the engine and its stores.
// Use errors.Is to check: errors.Is(err, model.ErrNotFound)
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
)
