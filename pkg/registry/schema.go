package registry

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// templateSchema validates external template definition files before they
// reach the registry. Authoring mistakes fail loudly at load time; graph
// reconciliation never sees a half-formed template.
const templateSchema = `{
	"type": "object",
	"required": ["kind", "name"],
	"properties": {
		"kind": {"type": "string", "minLength": 1},
		"name": {"type": "string", "minLength": 1},
		"intro": {"type": "string"},
		"category": {"type": "string", "enum": ["ai", "interaction", "tools", "system"]},
		"version": {"type": "string"},
		"inputs": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["key"],
				"properties": {
					"key": {"type": "string", "minLength": 1},
					"label": {"type": "string"},
					"description": {"type": "string"},
					"value_type": {"type": "string"},
					"required": {"type": "boolean"},
					"render_types": {"type": "array", "items": {"type": "string"}},
					"selected_type_index": {"type": "integer", "minimum": 0}
				}
			}
		},
		"outputs": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["key"],
				"properties": {
					"key": {"type": "string", "minLength": 1},
					"label": {"type": "string"},
					"description": {"type": "string"},
					"value_type": {"type": "string"},
					"required": {"type": "boolean"}
				}
			}
		}
	}
}`

// LoadTemplateFile reads a single JSON template definition, validates it
// against the template schema and registers it.
func (r *Registry) LoadTemplateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template file %s: %w", path, err)
	}

	return r.loadTemplateBytes(path, data)
}

// LoadTemplateDir registers every *.json template definition under dir.
// A missing directory is not an error; a platform may ship only built-ins.
func (r *Registry) LoadTemplateDir(dir string) error {
	root := os.DirFS(dir)

	paths, err := fs.Glob(root, "*.json")
	if err != nil {
		return fmt.Errorf("failed to list template dir %s: %w", dir, err)
	}

	r.logger.Info("Loading node templates", "path", dir, "count", len(paths))

	for _, p := range paths {
		data, err := fs.ReadFile(root, p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}

		if err := r.loadTemplateBytes(p, data); err != nil {
			return err
		}
	}

	return nil
}

func (r *Registry) loadTemplateBytes(name string, data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(templateSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("failed to validate template %s: %w", name, err)
	}

	if !result.Valid() {
		return fmt.Errorf("invalid template definition %s: %v", name, result.Errors())
	}

	var tpl models.NodeTemplate
	if err := json.Unmarshal(data, &tpl); err != nil {
		return fmt.Errorf("failed to decode template %s: %w", name, err)
	}

	r.RegisterTemplate(&tpl)

	return nil
}
