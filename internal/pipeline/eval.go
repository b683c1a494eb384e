package pipeline

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// evalFloat evaluates an optional numeric attribute. The second result
// reports whether the attribute was present.
func evalFloat(expr hcl.Expression) (float64, bool, error) {
	if expr == nil {
		return 0, false, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, false, diags
	}
	if val.IsNull() {
		return 0, false, nil
	}
	val, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, false, fmt.Errorf("expected a number: %w", err)
	}
	var out float64
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return 0, false, err
	}
	return out, true, nil
}

// evalStrings evaluates an optional list-of-strings attribute; absence
// yields an empty list.
func evalStrings(expr hcl.Expression) ([]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	val, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("expected a list of strings: %w", err)
	}
	var out []string
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return nil, err
	}
	return out, nil
}
