package user

import "errors"

var (
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrCompanyIDRequired     = errors.New("company ID is required")
	ErrInvalidClaims         = errors.New("invalid token claims")
)
