package graph

import "github.com/flowdeck/flowdeck/pkg/models"

// Materialize turns a node template into a fresh runtime node at the given
// canvas position. Input and output specs are deep-copied so later edits on
// the canvas can never leak back into the template. Templates are assumed
// well-formed; materialization has no error paths.
func Materialize(tpl *models.NodeTemplate, pos models.Position, translate Translator, ids IDSource) *models.FlowNode {
	return &models.FlowNode{
		ID:       ids.Next(),
		Kind:     tpl.Kind,
		Name:     translateOr(translate, tpl.Name),
		Intro:    translateOr(translate, tpl.Intro),
		Position: pos,
		Version:  tpl.Version,
		Inputs:   models.CopyInputs(tpl.Inputs),
		Outputs:  models.CopyOutputs(tpl.Outputs),
	}
}
