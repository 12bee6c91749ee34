// Package vote aligns heterogeneous geographic datasets onto one
// shared lattice and aggregates per-cell criteria into vote counts.
package vote

import (
	"fmt"
	"strings"

	goeval "github.com/edisonguo/govaluate"

	"github.com/nci/geomodel/grid"
)

// Criterion is one dataset's cell test: a field name, comparison
// operator and threshold, e.g. "vs > 2.5". Any boolean govaluate
// expression over exactly one field variable is accepted.
type Criterion struct {
	Raw   string
	Field string
	expr  *goeval.EvaluableExpression
}

// ParseCriterion compiles a criterion expression and extracts its field
// variable.
func ParseCriterion(s string) (*Criterion, error) {
	if len(strings.TrimSpace(s)) == 0 {
		return nil, fmt.Errorf("empty criterion expression")
	}
	expr, err := goeval.NewEvaluableExpression(s)
	if err != nil {
		return nil, err
	}

	field := ""
	for _, token := range expr.Tokens() {
		if token.Kind != goeval.VARIABLE {
			continue
		}
		varName, ok := token.Value.(string)
		if !ok {
			return nil, fmt.Errorf("variable token '%v' failed to cast string", token.Value)
		}
		if field != "" && varName != field {
			return nil, fmt.Errorf("criterion %q references more than one field (%q, %q)", s, field, varName)
		}
		field = varName
	}
	if field == "" {
		return nil, fmt.Errorf("criterion %q references no field", s)
	}
	return &Criterion{Raw: s, Field: field, expr: expr}, nil
}

// Bind checks that the criterion's field exists as a scalar field of
// the dataset.
func (c *Criterion) Bind(g *grid.GeoGrid) error {
	f := g.Field(c.Field)
	if f == nil {
		return &grid.InvalidCriterionError{Expr: c.Raw, Field: c.Field}
	}
	if len(f.Data) != 1 {
		return fmt.Errorf("criterion %q: field %q is a vector field, expecting a scalar", c.Raw, c.Field)
	}
	return nil
}

// Test evaluates the criterion for one cell value.
func (c *Criterion) Test(v float64) (bool, error) {
	res, err := c.expr.Evaluate(map[string]interface{}{c.Field: v})
	if err != nil {
		return false, err
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("criterion %q does not evaluate to a boolean", c.Raw)
	}
	return b, nil
}
