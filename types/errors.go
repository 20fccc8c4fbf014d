package types

import "github.com/pkg/errors"

/*
The void finder stops at the first error. Every error returned by the library
wraps exactly one of these sentinels, so callers can classify a failure with
errors.Is (or errors.Cause) regardless of the context that was added on the
way up.
*/
var (
	// ErrConfig flags invalid or missing run parameters
	ErrConfig = errors.New("invalid configuration")
	// ErrParse flags an input line that is not a 3-D point
	ErrParse = errors.New("unable to parse point")
	// ErrInsufficientData flags an input with fewer than four points
	ErrInsufficientData = errors.New("insufficient data")
	// ErrValidation flags a triangulation that fails its consistency checks
	ErrValidation = errors.New("invalid triangulation")
	// ErrGeometry flags a cell without a well defined circumsphere
	ErrGeometry = errors.New("degenerate geometry")
)
