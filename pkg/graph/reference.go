package graph

import "github.com/flowdeck/flowdeck/pkg/models"

// ReferenceValue is the declared type and requiredness a reference resolves to.
type ReferenceValue struct {
	ValueType models.ValueType `json:"value_type"`
	Required  bool             `json:"required"`
}

// UnknownReference is the permissive default a malformed, dangling or absent
// reference resolves to. Degrading instead of failing keeps a workflow with
// an edit-in-progress reference renderable.
func UnknownReference() ReferenceValue {
	return ReferenceValue{ValueType: models.ValueTypeAny, Required: false}
}

// ResolveReference resolves a reference against the node list and the
// workflow's chat configuration. The global sentinel routes the lookup to
// the declared chat variables; anything that does not name a declared output
// or variable resolves to the unknown default. Never returns an error.
func ResolveReference(ref *models.Reference, nodes []*models.FlowNode, cfg models.ChatConfig) ReferenceValue {
	if ref == nil || ref.NodeID() == "" || ref.Key() == "" {
		return UnknownReference()
	}

	if ref.IsGlobal() {
		if v := cfg.Variable(ref.Key()); v != nil {
			return ReferenceValue{ValueType: v.ValueType, Required: v.Required}
		}

		return UnknownReference()
	}

	for _, node := range nodes {
		if node.ID != ref.NodeID() {
			continue
		}

		if out := node.Output(ref.Key()); out != nil {
			return ReferenceValue{ValueType: out.ValueType, Required: out.Required}
		}

		break
	}

	return UnknownReference()
}
