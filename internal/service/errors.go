package service

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrOwnership          = errors.New("form does not belong to caller")
	ErrFormInactive       = errors.New("form is not accepting responses")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)
