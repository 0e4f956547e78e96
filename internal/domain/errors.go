package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// All engine errors are caller-input validation failures, raised before any
// state write. There is nothing transient to retry against.

var (
	// ErrInvalidUserID rejects a missing or empty user id on any
	// per-user operation.
	ErrInvalidUserID = errors.New("user id must not be empty")

	// ErrInvalidPoints rejects a negative point value.
	ErrInvalidPoints = errors.New("points must not be negative")

	// ErrInvalidStreak rejects a negative day count.
	ErrInvalidStreak = errors.New("streak days must not be negative")

	// ErrInvalidCourses rejects a negative completed-course count.
	ErrInvalidCourses = errors.New("course count must not be negative")

	// ErrInvalidActivity rejects a missing activity.
	ErrInvalidActivity = errors.New("activity must not be nil")
)
