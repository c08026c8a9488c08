package models

// VariableNodeID is the reserved node-id meaning "this reference points at a
// workflow-level variable, not a node output".
const VariableNodeID = "VARIABLE_NODE_ID"

// Reference points an input at a declared node output or a global variable.
// It marshals as a two-element JSON array: [node id or sentinel, field key].
type Reference [2]string

// NodeID returns the node-or-sentinel half of the reference.
func (r Reference) NodeID() string { return r[0] }

// Key returns the field key half of the reference.
func (r Reference) Key() string { return r[1] }

// IsGlobal reports whether the reference targets a workflow variable.
func (r Reference) IsGlobal() bool { return r[0] == VariableNodeID }

// AsReference interprets an input value as a Reference. Reference-mode input
// values arrive as JSON arrays, so after a decode round-trip they show up as
// []any; freshly built graphs may carry Reference or []string directly.
func AsReference(v any) (Reference, bool) {
	switch val := v.(type) {
	case Reference:
		return val, true
	case [2]string:
		return Reference(val), true
	case []string:
		if len(val) == 2 {
			return Reference{val[0], val[1]}, true
		}
	case []any:
		if len(val) != 2 {
			return Reference{}, false
		}

		first, ok1 := val[0].(string)
		second, ok2 := val[1].(string)

		if ok1 && ok2 {
			return Reference{first, second}, true
		}
	}

	return Reference{}, false
}

// VariableItem declares one workflow-level variable.
type VariableItem struct {
	Key       string    `json:"key"   validate:"required"`
	Label     string    `json:"label,omitempty"`
	ValueType ValueType `json:"value_type"`
	Required  bool      `json:"required"`
}

// ChatConfig holds the workflow-level chat configuration, including the
// global variable declarations referenced by VariableNodeID.
type ChatConfig struct {
	Variables       []VariableItem `json:"variables,omitempty"`
	WelcomeText     string         `json:"welcome_text,omitempty"`
	QuestionGuide   bool           `json:"question_guide,omitempty"`
	ScheduledSyncAt string         `json:"scheduled_sync_at,omitempty"`
}

// Variable returns the declared variable with the given key, or nil.
func (c *ChatConfig) Variable(key string) *VariableItem {
	for i := range c.Variables {
		if c.Variables[i].Key == key {
			return &c.Variables[i]
		}
	}

	return nil
}
