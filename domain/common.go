package domain

import (
	"errors"
)

const (
	RoleDonor       = "donor"
	RoleInstitution = "institution"
	RoleAdmin       = "admin"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrValidation     = errors.New("validation failed")
)

type (
	CoordinateQuery struct {
		Latitude  *float64 `query:"latitude" validate:"omitempty,latitude"`
		Longitude *float64 `query:"longitude" validate:"omitempty,longitude"`
	}
)
