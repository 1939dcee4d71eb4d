package common

import "fmt"

var (
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrUnexpectedStatus   = fmt.Errorf("unexpected http status")
	ErrBadTimestamp       = fmt.Errorf("malformed session timestamp")
	ErrSinkClosed         = fmt.Errorf("sink is closed")
)
