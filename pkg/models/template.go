// Package models defines the core domain models for the node-graph workflow editor.
package models

import "slices"

// TemplateCategory groups node templates in the editor palette.
type TemplateCategory string

const (
	TemplateCategoryAI          TemplateCategory = "ai"
	TemplateCategoryInteraction TemplateCategory = "interaction"
	TemplateCategoryTools       TemplateCategory = "tools"
	TemplateCategorySystem      TemplateCategory = "system"
)

// NodeInput describes one input port of a node. On a template the Value field
// holds the default; on a runtime node it holds the current value.
type NodeInput struct {
	Key               string       `json:"key"                           validate:"required"`
	Label             string       `json:"label,omitempty"`
	Description       string       `json:"description,omitempty"`
	ValueType         ValueType    `json:"value_type"`
	Required          bool         `json:"required"`
	RenderTypes       []RenderType `json:"render_types"`
	SelectedTypeIndex int          `json:"selected_type_index,omitempty"`
	Value             any          `json:"value,omitempty"`
}

// IsDynamic reports whether this input lets the user add custom input ports
// at runtime. Dynamic inputs are preserved verbatim across reconciliation.
func (in *NodeInput) IsDynamic() bool {
	return slices.Contains(in.RenderTypes, RenderTypeAddInputParam)
}

// SelectedRenderType returns the render type picked by SelectedTypeIndex,
// falling back to the first entry when the index is out of range.
func (in *NodeInput) SelectedRenderType() RenderType {
	if len(in.RenderTypes) == 0 {
		return ""
	}

	if in.SelectedTypeIndex < 0 || in.SelectedTypeIndex >= len(in.RenderTypes) {
		return in.RenderTypes[0]
	}

	return in.RenderTypes[in.SelectedTypeIndex]
}

// NodeOutput describes one output port of a node.
type NodeOutput struct {
	Key         string    `json:"key"                   validate:"required"`
	Label       string    `json:"label,omitempty"`
	Description string    `json:"description,omitempty"`
	ValueType   ValueType `json:"value_type"`
	Required    bool      `json:"required"`
}

// NodeTemplate is the static, author-provided definition of a node kind.
// Templates are immutable after registration.
type NodeTemplate struct {
	Kind     string           `json:"kind"     validate:"required"`
	Name     string           `json:"name"     validate:"required,min=1"`
	Intro    string           `json:"intro,omitempty"`
	Category TemplateCategory `json:"category"`
	Version  string           `json:"version,omitempty"`
	Inputs   []NodeInput      `json:"inputs"`
	Outputs  []NodeOutput     `json:"outputs"`
}
