package model

import "errors"

// Error categories surfaced by the analysis pipeline. Callers match them with errors.Is.
var (
	ErrInsufficientData     = errors.New("insufficient data")
	ErrUnsupportedTimeframe = errors.New("unsupported timeframe")
	ErrInsufficientHistory  = errors.New("insufficient history")
	ErrFetch                = errors.New("fetch error")
	ErrInvalidBar           = errors.New("invalid bar")
	ErrColumnExists         = errors.New("column already exists")
)

// ErrorCategory returns a short stable name for the error's category, or "INTERNAL".
func ErrorCategory(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientData):
		return "INSUFFICIENT_DATA"
	case errors.Is(err, ErrUnsupportedTimeframe):
		return "UNSUPPORTED_TIMEFRAME"
	case errors.Is(err, ErrInsufficientHistory):
		return "INSUFFICIENT_HISTORY"
	case errors.Is(err, ErrFetch):
		return "FETCH_ERROR"
	case errors.Is(err, ErrInvalidBar):
		return "INVALID_BAR"
	default:
		return "INTERNAL"
	}
}
