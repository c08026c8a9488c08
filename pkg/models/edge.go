package models

// Edge connects two ports directly (fully normalized).
type Edge struct {
	ID         string `json:"id"`
	SourcePort string `json:"source_port" validate:"required"` // "{node_id}:{output_key}"
	TargetPort string `json:"target_port" validate:"required"` // "{node_id}:{input_key}"
}

// SourceNodeID returns the node id half of the source port.
func (e *Edge) SourceNodeID() string {
	nodeID, _, _ := ParsePortID(e.SourcePort)

	return nodeID
}

// TargetNodeID returns the node id half of the target port.
func (e *Edge) TargetNodeID() string {
	nodeID, _, _ := ParsePortID(e.TargetPort)

	return nodeID
}

// ParsePortID parses a port ID in format "{node_id}:{port_key}" into components.
func ParsePortID(portID string) (string, string, bool) {
	for i := range len(portID) {
		if portID[i] == ':' {
			return portID[:i], portID[i+1:], true
		}
	}

	return "", "", false
}

// MakePortID creates a port ID from node ID and port key.
func MakePortID(nodeID, portKey string) string {
	return nodeID + ":" + portKey
}
