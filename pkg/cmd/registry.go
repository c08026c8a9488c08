// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"log/slog"

	"github.com/flowdeck/flowdeck/pkg/registry"
)

// NewRegistry builds the template catalog: the builtin palette first, then
// any JSON template definitions found under templatesPath.
func NewRegistry(log *slog.Logger, templatesPath string) *registry.Registry {
	reg := registry.NewRegistry(log)
	reg.RegisterDefaultTemplates()

	if templatesPath != "" {
		if err := reg.LoadTemplateDir(templatesPath); err != nil {
			panic(err)
		}
	}

	return reg
}
