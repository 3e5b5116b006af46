package service

import "errors"

var (
	ErrValidation   = errors.New("validation")    // 400
	ErrUnauthorized = errors.New("unauthorized")  // 401
	ErrNotFound     = errors.New("not found")     // 404
	ErrConflict     = errors.New("conflict")      // 409
	ErrExpired      = errors.New("expired")       // 410
	ErrLimit        = errors.New("limit reached") // 429
)
