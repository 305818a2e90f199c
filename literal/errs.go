package literal

import "errors"

var (
	ErrInvalidValue = errors.New("invalid value format")
	ErrInvalidDate  = errors.New("invalid date")
)
