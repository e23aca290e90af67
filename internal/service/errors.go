package service

import "errors"

// 业务层通用错误，handler 可根据错误类型映射到合适的 HTTP 状态码。
var (
	ErrPhoneRequired = errors.New("phone required")
	ErrNotRegistered = errors.New("not registered")
	ErrInvalidCode   = errors.New("invalid code")
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
)
