// Package modelcaps exposes the capability table for the AI models the chat
// node can select, with an optional redis-backed cache in front of remote
// providers.
package modelcaps

import (
	"context"
	"slices"
)

// Capability describes what a model can do and its context limits.
type Capability struct {
	Model       string `json:"model"`
	Provider    string `json:"provider"`
	MaxContext  int    `json:"max_context"`
	MaxResponse int    `json:"max_response"`
	Vision      bool   `json:"vision"`
	ToolCalls   bool   `json:"tool_calls"`
}

// Provider resolves a model name to its capability record.
type Provider interface {
	Lookup(ctx context.Context, model string) (*Capability, bool, error)
}

// Catalog is a Provider that can also enumerate the models it knows about,
// which the palette endpoints need.
type Catalog interface {
	Provider
	Models() []string
}

// builtin is the shipped capability table. Deployments override or extend it
// through a remote provider behind the cache.
var builtin = map[string]Capability{
	"gpt-4o": {
		Model:       "gpt-4o",
		Provider:    "openai",
		MaxContext:  128000,
		MaxResponse: 16384,
		Vision:      true,
		ToolCalls:   true,
	},
	"gpt-4o-mini": {
		Model:       "gpt-4o-mini",
		Provider:    "openai",
		MaxContext:  128000,
		MaxResponse: 16384,
		Vision:      true,
		ToolCalls:   true,
	},
	"claude-sonnet": {
		Model:       "claude-sonnet",
		Provider:    "anthropic",
		MaxContext:  200000,
		MaxResponse: 8192,
		Vision:      true,
		ToolCalls:   true,
	},
	"deepseek-chat": {
		Model:       "deepseek-chat",
		Provider:    "deepseek",
		MaxContext:  64000,
		MaxResponse: 8192,
		ToolCalls:   true,
	},
	"text-embedding-3-small": {
		Model:      "text-embedding-3-small",
		Provider:   "openai",
		MaxContext: 8191,
	},
}

// StaticProvider serves the builtin table.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (p *StaticProvider) Lookup(_ context.Context, model string) (*Capability, bool, error) {
	capability, ok := builtin[model]
	if !ok {
		return nil, false, nil
	}

	return &capability, true, nil
}

// Models returns the names in the builtin table, for palette dropdowns.
func (p *StaticProvider) Models() []string {
	models := make([]string, 0, len(builtin))
	for model := range builtin {
		models = append(models, model)
	}

	slices.Sort(models)

	return models
}
