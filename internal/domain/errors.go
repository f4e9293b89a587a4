package domain

import "errors"

var (
	// ErrFetchFailure wraps tracker client failures. A sync aborted with
	// this error has made no state change and is safe to retry.
	ErrFetchFailure = errors.New("tracker fetch failed")

	// ErrInconsistentHistory marks a journal that replay cannot resolve,
	// such as an entry referencing an unknown ticket. The affected sync
	// window is aborted without writing snapshots.
	ErrInconsistentHistory = errors.New("inconsistent ticket history")

	// ErrNotFound is wrapped by repositories when a keyed lookup misses.
	ErrNotFound = errors.New("not found")
)
