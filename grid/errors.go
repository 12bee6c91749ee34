package grid

import (
	"fmt"
)

// ShapeMismatchError reports coordinate or field arrays disagreeing in
// shape at grid construction time.
type ShapeMismatchError struct {
	Name string
	Got  int
	Want int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch for %q: %v elements, expecting %v", e.Name, e.Got, e.Want)
}

// InvalidAttributesError reports a malformed attribute map.
type InvalidAttributesError struct {
	Reason string
}

func (e *InvalidAttributesError) Error() string {
	return fmt.Sprintf("invalid attributes: %s", e.Reason)
}

// OutOfBoundsError reports a requested fixed depth/lat/lon outside the
// data extent.
type OutOfBoundsError struct {
	Param    string
	Value    float64
	Min, Max float64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s %v out of bounds [%v, %v]", e.Param, e.Value, e.Min, e.Max)
}

// MissingPairedParameterError reports a Start given without End or vice
// versa.
type MissingPairedParameterError struct {
	Given   string
	Missing string
}

func (e *MissingPairedParameterError) Error() string {
	return fmt.Sprintf("%s given without %s", e.Given, e.Missing)
}

// UnsupportedDatasetShapeError reports an operation that is not defined
// for the dataset's shape class.
type UnsupportedDatasetShapeError struct {
	Op    string
	Class Class
}

func (e *UnsupportedDatasetShapeError) Error() string {
	return fmt.Sprintf("%s is not supported for %s data", e.Op, e.Class)
}

// InvalidCriterionError reports an unknown field name in a voting
// criterion.
type InvalidCriterionError struct {
	Expr  string
	Field string
}

func (e *InvalidCriterionError) Error() string {
	return fmt.Sprintf("criterion %q references unknown field %q", e.Expr, e.Field)
}
