package room

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrRoomNotFound   = errors.New("room not found")
)
