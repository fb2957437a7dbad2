package repository

import "errors"

// Sentinel kinds for dataset store errors.
var (
	ErrOpenDataset   = errors.New("open dataset failed")
	ErrReadDataset   = errors.New("read dataset failed")
	ErrMissingColumn = errors.New("dataset missing required column")
	ErrNotLoaded     = errors.New("dataset not loaded")
)
