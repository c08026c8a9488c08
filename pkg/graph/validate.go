package graph

import "github.com/flowdeck/flowdeck/pkg/models"

// CheckGraph validates a node-and-edge graph for structural correctness and
// returns the de-duplicated list of invalid node ids in first-encountered
// order. A nil result means no problems.
//
// A node is invalid when any required input has an absent/empty value. An
// input whose selected render mode is the reference mode is satisfied by any
// non-empty reference value; whether that reference resolves is
// ResolveReference's concern, applied upstream. An edge whose source or
// target node id does not exist invalidates both of that edge's endpoints,
// and nothing else.
func CheckGraph(nodes []*models.FlowNode, edges []*models.Edge) []string {
	var invalid []string

	seen := make(map[string]bool)

	mark := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			invalid = append(invalid, id)
		}
	}

	byID := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		byID[node.ID] = true
	}

	for _, node := range nodes {
		if !nodeSatisfied(node) {
			mark(node.ID)
		}
	}

	for _, edge := range edges {
		source := edge.SourceNodeID()
		target := edge.TargetNodeID()

		if !byID[source] || !byID[target] {
			mark(source)
			mark(target)
		}
	}

	return invalid
}

func nodeSatisfied(node *models.FlowNode) bool {
	for i := range node.Inputs {
		in := &node.Inputs[i]
		if !in.Required {
			continue
		}

		if in.SelectedRenderType() == models.RenderTypeReference {
			ref, ok := models.AsReference(in.Value)
			if !ok || ref.NodeID() == "" || ref.Key() == "" {
				return false
			}

			continue
		}

		if isEmptyValue(in.Value) {
			return false
		}
	}

	return true
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	default:
		return false
	}
}
