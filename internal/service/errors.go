package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDeleteNotConfirmed = errors.New("deletion not confirmed")
)
