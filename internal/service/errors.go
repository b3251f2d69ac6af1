package service

import "errors"

// Ошибки-отказы при отметке посещаемости. Это не сбои сервера:
// на границе запроса каждая превращается в понятное сообщение.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTokenInvalid    = errors.New("qr token is invalid or expired")
	ErrUnknownCode     = errors.New("unknown checkin code")
	ErrNotEnrolled     = errors.New("student is not actively enrolled in this group")
)
