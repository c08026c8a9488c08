// Package registry holds the node template catalog: the mapping from
// node-kind tag to its current NodeTemplate, populated at startup.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/flowdeck/flowdeck/pkg/models"
)

type Registry struct {
	logger    *slog.Logger
	templates map[string]*models.NodeTemplate
	order     []string
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		logger:    log,
		templates: make(map[string]*models.NodeTemplate),
	}
}

// RegisterTemplate adds or replaces the template for its kind tag.
// Replacement keeps the original palette position.
func (r *Registry) RegisterTemplate(tpl *models.NodeTemplate) {
	if _, exists := r.templates[tpl.Kind]; !exists {
		r.order = append(r.order, tpl.Kind)
	}

	r.templates[tpl.Kind] = tpl

	r.logger.Debug("Registered node template", "kind", tpl.Kind, "version", tpl.Version)
}

// TemplateByKind returns the current template for a node kind.
func (r *Registry) TemplateByKind(kind string) (*models.NodeTemplate, bool) {
	tpl, ok := r.templates[kind]

	return tpl, ok
}

// HealthCheck reports whether the catalog has any templates to offer.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.templates) == 0 {
		return "Template catalog is empty", false
	}

	return fmt.Sprintf("Template catalog holds %d templates", len(r.templates)), true
}

// Templates returns all registered templates in registration order.
func (r *Registry) Templates() []*models.NodeTemplate {
	list := make([]*models.NodeTemplate, 0, len(r.order))
	for _, kind := range r.order {
		list = append(list, r.templates[kind])
	}

	return list
}
