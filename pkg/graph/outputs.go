package graph

import "github.com/flowdeck/flowdeck/pkg/models"

// FilterOutputsByType returns the outputs whose declared type matches the
// requested one, preserving order. Requesting "any" returns the list
// unfiltered. Requesting an array type also admits outputs declared as the
// plain element type, since a scalar can be consumed as a single-element
// array downstream.
func FilterOutputsByType(outputs []models.NodeOutput, want models.ValueType) []models.NodeOutput {
	if want == models.ValueTypeAny {
		return outputs
	}

	elem, widen := want.Elem()

	matched := make([]models.NodeOutput, 0, len(outputs))

	for _, out := range outputs {
		if out.ValueType == want || (widen && out.ValueType == elem) {
			matched = append(matched, out)
		}
	}

	return matched
}
