package graph

import (
	"testing"

	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveReference_AbsentIsUnknown(t *testing.T) {
	t.Parallel()

	got := ResolveReference(nil, nil, models.ChatConfig{})

	assert.Equal(t, ReferenceValue{ValueType: models.ValueTypeAny, Required: false}, got)
}

func TestResolveReference_GlobalVariable(t *testing.T) {
	t.Parallel()

	cfg := models.ChatConfig{Variables: []models.VariableItem{
		{Key: "userName", ValueType: models.ValueTypeString, Required: true},
	}}

	ref := models.Reference{models.VariableNodeID, "userName"}
	got := ResolveReference(&ref, nil, cfg)

	assert.Equal(t, ReferenceValue{ValueType: models.ValueTypeString, Required: true}, got)
}

func TestResolveReference_UndeclaredGlobalIsUnknown(t *testing.T) {
	t.Parallel()

	ref := models.Reference{models.VariableNodeID, "missing"}
	got := ResolveReference(&ref, nil, models.ChatConfig{})

	assert.Equal(t, UnknownReference(), got)
}

func TestResolveReference_NodeOutput(t *testing.T) {
	t.Parallel()

	nodes := []*models.FlowNode{
		{
			ID: "nodeX",
			Outputs: []models.NodeOutput{
				{Key: "outY", ValueType: models.ValueTypeNumber, Required: false},
			},
		},
	}

	ref := models.Reference{"nodeX", "outY"}
	got := ResolveReference(&ref, nodes, models.ChatConfig{})

	assert.Equal(t, ReferenceValue{ValueType: models.ValueTypeNumber, Required: false}, got)
}

func TestResolveReference_DanglingDegradesToUnknown(t *testing.T) {
	t.Parallel()

	nodes := []*models.FlowNode{{ID: "nodeX"}}

	tests := []struct {
		name string
		ref  models.Reference
	}{
		{name: "missing node", ref: models.Reference{"ghost", "outY"}},
		{name: "missing output", ref: models.Reference{"nodeX", "ghost"}},
		{name: "empty key", ref: models.Reference{"nodeX", ""}},
		{name: "empty node id", ref: models.Reference{"", "outY"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, UnknownReference(), ResolveReference(&tc.ref, nodes, models.ChatConfig{}))
		})
	}
}
