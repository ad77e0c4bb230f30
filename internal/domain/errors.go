package domain

import "errors"

// Domain errors shared by services and transports.
var (
	ErrNotFound                  = errors.New("resource not found")
	ErrInvalidInput              = errors.New("invalid input")
	ErrDuplicate                 = errors.New("duplicate resource")
	ErrSimulationProductRequired = errors.New("please select a product to simulate demand for")
)
