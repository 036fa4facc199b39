package spatial

import "errors"

var (
	ErrEmptyTree       = errors.New("locusgo: tree is empty")
	ErrInvalidK        = errors.New("locusgo: k must be positive")
	ErrInvalidCapacity = errors.New("locusgo: rtree max children must be >= 2")
	ErrInvalidRadius   = errors.New("locusgo: radius must be non-negative")
)
