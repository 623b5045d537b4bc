package services

import "errors"

var (
	ErrTableNotFound     = errors.New("table not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrDuplicateTable    = errors.New("table number already exists")
	ErrDuplicateSlug     = errors.New("qr slug already exists")
	ErrInvalidTable      = errors.New("table number must be a positive integer")
	ErrInvalidOrder      = errors.New("invalid order")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidTransition = errors.New("illegal status transition")
	// ErrStatusConflict means a concurrent transition won the race: the
	// stored status no longer matched when the update ran.
	ErrStatusConflict = errors.New("order status changed concurrently")
)
