package errors

import "net/http"

var (
	ErrMissingColumn = New(
		"MISSING_COLUMN",
		"Observation table lacks a required column",
		http.StatusUnprocessableEntity,
	)

	ErrOverlayUnreadable = New(
		"OVERLAY_UNREADABLE",
		"Overlay file could not be read",
		http.StatusUnprocessableEntity,
	)

	ErrEmptyTable = New(
		"EMPTY_TABLE",
		"Observation table is empty",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidObservation = New(
		"INVALID_OBSERVATION",
		"Observation row holds an unusable value",
		http.StatusUnprocessableEntity,
	)

	ErrMapNotFound = New(
		"MAP_NOT_FOUND",
		"Rendered map not found",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
