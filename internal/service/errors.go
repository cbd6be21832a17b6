package service

import "errors"

// Every error here is recoverable at the caller: the handler rejects the
// request and the terminal operator corrects the input. None abort the
// process, and a failed confirm leaves persisted state untouched.
var (
	ErrInvalidTimeRange     = errors.New("exit time precedes entry time")
	ErrSpotUnsuitable       = errors.New("spot is not suitable for this vehicle")
	ErrSpotOccupied         = errors.New("spot is already occupied")
	ErrInsufficientPayment  = errors.New("amount tendered does not cover the parking fee")
	ErrSessionAlreadyClosed = errors.New("parking session is already closed")
	ErrNegativeAmount       = errors.New("payment amount cannot be negative")
)
