package models

import "slices"

// Position is a node's 2D location on the editor canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FlowNode is a live node instance placed on the canvas. It carries mutable
// copies of its template's input/output specs plus the user's edits.
type FlowNode struct {
	ID       string       `json:"id"       validate:"required"`
	Kind     string       `json:"kind"     validate:"required"`
	Name     string       `json:"name"`
	Intro    string       `json:"intro,omitempty"`
	Position Position     `json:"position"`
	Version  string       `json:"version,omitempty"`
	Inputs   []NodeInput  `json:"inputs"`
	Outputs  []NodeOutput `json:"outputs"`
}

// Input returns the input with the given key, or nil.
func (n *FlowNode) Input(key string) *NodeInput {
	for i := range n.Inputs {
		if n.Inputs[i].Key == key {
			return &n.Inputs[i]
		}
	}

	return nil
}

// Output returns the output with the given key, or nil.
func (n *FlowNode) Output(key string) *NodeOutput {
	for i := range n.Outputs {
		if n.Outputs[i].Key == key {
			return &n.Outputs[i]
		}
	}

	return nil
}

// StoredNode is the serialized form of a FlowNode, the unit read from and
// written to workflow storage. The version tag records which template version
// the node was saved against.
type StoredNode struct {
	ID       string       `json:"id"       validate:"required"`
	Kind     string       `json:"kind"     validate:"required"`
	Name     string       `json:"name"`
	Intro    string       `json:"intro,omitempty"`
	Position Position     `json:"position"`
	Version  string       `json:"version,omitempty"`
	Inputs   []NodeInput  `json:"inputs"`
	Outputs  []NodeOutput `json:"outputs"`
}

// Input returns the stored input with the given key, or nil.
func (n *StoredNode) Input(key string) *NodeInput {
	for i := range n.Inputs {
		if n.Inputs[i].Key == key {
			return &n.Inputs[i]
		}
	}

	return nil
}

// Store converts a runtime node to its persisted form.
func (n *FlowNode) Store() *StoredNode {
	return &StoredNode{
		ID:       n.ID,
		Kind:     n.Kind,
		Name:     n.Name,
		Intro:    n.Intro,
		Position: n.Position,
		Version:  n.Version,
		Inputs:   CopyInputs(n.Inputs),
		Outputs:  CopyOutputs(n.Outputs),
	}
}

// CopyInputs deep-copies an input spec list so later mutation of the copy
// cannot alter the source.
func CopyInputs(inputs []NodeInput) []NodeInput {
	if inputs == nil {
		return nil
	}

	out := make([]NodeInput, len(inputs))
	for i, in := range inputs {
		out[i] = in
		out[i].RenderTypes = slices.Clone(in.RenderTypes)
		out[i].Value = CopyValue(in.Value)
	}

	return out
}

// CopyOutputs deep-copies an output spec list.
func CopyOutputs(outputs []NodeOutput) []NodeOutput {
	if outputs == nil {
		return nil
	}

	out := make([]NodeOutput, len(outputs))
	copy(out, outputs)

	return out
}

// CopyValue deep-copies a JSON-shaped value (maps, slices, scalars).
func CopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = CopyValue(item)
		}

		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CopyValue(item)
		}

		return out
	case []string:
		return slices.Clone(val)
	default:
		return v
	}
}
