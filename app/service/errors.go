package service

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNoUserData        = errors.New("no user data found")
	ErrSignatureMismatch = errors.New("payment signature mismatch")
	ErrWebhookRejected   = errors.New("webhook rejected")
)
