package metric

import (
	"errors"
	"fmt"
)

// ErrEmptyVertexSet indicates a centroid or surface was requested with zero
// vertices. Callers must handle it explicitly; it is never defaulted to the
// origin, which would silently produce NaN geometry.
var ErrEmptyVertexSet = errors.New("metric: vertex set is empty")

// InvalidParameterError reports a rejected parameter or vertex value.
// The engine keeps its prior valid state when returning this error.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("metric: invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}

// IsInvalidParameter reports whether err is an *InvalidParameterError
func IsInvalidParameter(err error) bool {
	var ipe *InvalidParameterError
	return errors.As(err, &ipe)
}
