package unit

import "errors"

// Sentinel errors for unit definition and conversion.
var (
	// ErrIncompatibleDimension indicates two units with different canonical
	// dimension vectors were asked to convert, add, subtract or compare.
	ErrIncompatibleDimension = errors.New("incompatible dimensions")
	// ErrNumericOverflow indicates an exact conversion factor overflowed and
	// the resolver runs in strict-exact mode.
	ErrNumericOverflow = errors.New("conversion factor overflowed exact range")
	// ErrDuplicateBase indicates a system was given two base units for the
	// same base dimension.
	ErrDuplicateBase = errors.New("duplicate base unit for dimension")
	// ErrIncompleteSystem indicates a system lacks a base unit for a
	// dimension it is asked about.
	ErrIncompleteSystem = errors.New("system has no base unit for dimension")
)

// ConversionError records a failed resolution between two units.
type ConversionError struct {
	From string
	To   string
	Err  error
}

// Error returns a human-readable string naming both units.
func (e *ConversionError) Error() string {
	return "convert " + e.From + " → " + e.To + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ConversionError) Unwrap() error {
	return e.Err
}
