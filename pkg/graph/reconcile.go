package graph

import "github.com/flowdeck/flowdeck/pkg/models"

// TemplateSource looks up the current template for a node kind. The template
// registry implements this.
type TemplateSource interface {
	TemplateByKind(kind string) (*models.NodeTemplate, bool)
}

// Reconcile merges a stored node's saved field values into the shape of its
// current template, preserving user edits while adopting template structural
// changes:
//
//   - outputs are taken verbatim from the current template (output shape is
//     not user-editable),
//   - dynamic inputs (render type list contains the add-input-param marker)
//     are kept exactly as persisted, even when the template declares no
//     matching key,
//   - every other input takes the template's shape with the persisted value
//     (and selected widget) overlaid by key; absent keys get the template
//     default,
//   - persisted non-dynamic inputs the template no longer declares are
//     dropped.
//
// An unknown node kind falls back to an empty placeholder template, so a
// graph with a stale node loads as a visibly broken node instead of failing.
func Reconcile(stored *models.StoredNode, templates TemplateSource, translate Translator) *models.FlowNode {
	tpl, ok := templates.TemplateByKind(stored.Kind)
	if !ok {
		tpl = &models.NodeTemplate{Kind: stored.Kind}
	}

	node := &models.FlowNode{
		ID:       stored.ID,
		Kind:     stored.Kind,
		Name:     stored.Name,
		Intro:    stored.Intro,
		Position: stored.Position,
		Version:  tpl.Version,
		Inputs:   reconcileInputs(stored, tpl),
		Outputs:  models.CopyOutputs(tpl.Outputs),
	}

	if node.Name == "" {
		node.Name = translateOr(translate, tpl.Name)
	}

	if node.Intro == "" {
		node.Intro = translateOr(translate, tpl.Intro)
	}

	return node
}

func reconcileInputs(stored *models.StoredNode, tpl *models.NodeTemplate) []models.NodeInput {
	inputs := make([]models.NodeInput, 0, len(tpl.Inputs))

	for i := range tpl.Inputs {
		tplIn := &tpl.Inputs[i]

		persisted := stored.Input(tplIn.Key)
		if persisted != nil && persisted.IsDynamic() {
			// Dynamic marker takes strict precedence over the template shape.
			inputs = append(inputs, copyInput(persisted))

			continue
		}

		merged := copyInput(tplIn)
		if persisted != nil {
			merged.Value = models.CopyValue(persisted.Value)
			merged.SelectedTypeIndex = persisted.SelectedTypeIndex
		}

		inputs = append(inputs, merged)
	}

	// Custom input ports added at runtime survive even though the static
	// template does not know about them.
	for i := range stored.Inputs {
		stIn := &stored.Inputs[i]
		if stIn.IsDynamic() && !templateHasInput(tpl, stIn.Key) {
			inputs = append(inputs, copyInput(stIn))
		}
	}

	return inputs
}

func templateHasInput(tpl *models.NodeTemplate, key string) bool {
	for i := range tpl.Inputs {
		if tpl.Inputs[i].Key == key {
			return true
		}
	}

	return false
}

func copyInput(in *models.NodeInput) models.NodeInput {
	copied := models.CopyInputs([]models.NodeInput{*in})

	return copied[0]
}
