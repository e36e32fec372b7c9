package moderation

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid_input")
	ErrPlayerNotFound = errors.New("player_not_found")
)
