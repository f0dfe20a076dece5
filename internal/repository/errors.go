package repository

import "errors"

var (
	ErrGameNotFound   = errors.New("game session not found")
	ErrOptimisticLock = errors.New("game session was modified by another process")
)
