package model

import "github.com/pkg/errors"

var (
	// ErrZeroDimension is returned when a universe is created or resized with a zero width or height
	ErrZeroDimension = errors.New("universe dimensions must be positive")
	// ErrOutOfRange is returned by SetCells when a coordinate lies outside the grid
	ErrOutOfRange = errors.New("cell coordinate out of range")
)
