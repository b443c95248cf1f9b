package catalog

import "errors"

// Sentinel errors for catalog loading and validation.
var (
	// ErrUnknownFormat indicates an unsupported catalog encoding or file extension.
	ErrUnknownFormat = errors.New("unknown catalog format")
	// ErrMissingField indicates a required definition field is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrDuplicateName indicates two definitions of the same kind share a name or symbol.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrUnknownReference indicates a definition refers to a name that is not defined.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrUnknownUnit indicates Lookup found no unit with the given name or symbol.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrInvalidDimension indicates a dimension expression could not be parsed.
	ErrInvalidDimension = errors.New("invalid dimension expression")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	// ValCatMissingField indicates a required field is empty.
	ValCatMissingField ValidationCategory = "missing_field"
	// ValCatDuplicateName indicates a name or symbol is defined twice.
	ValCatDuplicateName ValidationCategory = "duplicate_name"
	// ValCatUnknownReference indicates a reference to an undefined name.
	ValCatUnknownReference ValidationCategory = "unknown_reference"
	// ValCatInvalidFactor indicates a ratio or factor literal is malformed
	// or conflicts with an existing edge.
	ValCatInvalidFactor ValidationCategory = "invalid_factor"
	// ValCatDimensionMismatch indicates an edge or scaled unit spans two
	// different dimensions.
	ValCatDimensionMismatch ValidationCategory = "dimension_mismatch"
	// ValCatInvalidSystem indicates a system lacks or duplicates a base dimension.
	ValCatInvalidSystem ValidationCategory = "invalid_system"
)

// ValidationError records one problem found while building a catalog.
type ValidationError struct {
	Category ValidationCategory // Machine-readable category for programmatic handling
	Kind     string             // dimension, base_unit, edge, system or unit
	Name     string
	Err      error
}

// Error returns a human-readable string naming the offending definition.
func (e *ValidationError) Error() string {
	if e.Name != "" {
		return e.Kind + " " + e.Name + ": " + e.Err.Error()
	}
	return e.Kind + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
