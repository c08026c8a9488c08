package registry

import "github.com/flowdeck/flowdeck/pkg/models"

// Built-in node kinds.
const (
	KindStart         = "system:start"
	KindChat          = "ai:chat"
	KindDatasetSearch = "dataset:search"
	KindAnswer        = "chat:answer"
	KindHTTPRequest   = "tool:http"
	KindVariableSet   = "var:update"
	KindCustomTool    = "tool:custom"
)

// RegisterDefaultTemplates registers the built-in node templates.
func (r *Registry) RegisterDefaultTemplates() {
	r.RegisterTemplate(startTemplate())
	r.RegisterTemplate(chatTemplate())
	r.RegisterTemplate(datasetSearchTemplate())
	r.RegisterTemplate(answerTemplate())
	r.RegisterTemplate(httpRequestTemplate())
	r.RegisterTemplate(variableSetTemplate())
	r.RegisterTemplate(customToolTemplate())
}

func startTemplate() *models.NodeTemplate {
	return &models.NodeTemplate{
		Kind:     KindStart,
		Name:     "core.template.start",
		Intro:    "core.template.start.intro",
		Category: models.TemplateCategorySystem,
		Version:  "1.0",
		Outputs: []models.NodeOutput{
			{Key: "userChatInput", Label: "core.output.userChatInput", ValueType: models.ValueTypeString, Required: true},
			{Key: "history", Label: "core.output.history", ValueType: models.ValueTypeChatHistory},
		},
	}
}

func chatTemplate() *models.NodeTemplate {
	return &models.NodeTemplate{
		Kind:     KindChat,
		Name:     "core.template.chat",
		Intro:    "core.template.chat.intro",
		Category: models.TemplateCategoryAI,
		Version:  "1.2",
		Inputs: []models.NodeInput{
			{
				Key:         "model",
				Label:       "core.input.model",
				ValueType:   models.ValueTypeString,
				Required:    true,
				RenderTypes: []models.RenderType{models.RenderTypeSelect},
			},
			{
				Key:         "temperature",
				Label:       "core.input.temperature",
				ValueType:   models.ValueTypeNumber,
				RenderTypes: []models.RenderType{models.RenderTypeNumberInput, models.RenderTypeHidden},
				Value:       0.0,
			},
			{
				Key:         "systemPrompt",
				Label:       "core.input.systemPrompt",
				ValueType:   models.ValueTypeString,
				RenderTypes: []models.RenderType{models.RenderTypeTextarea, models.RenderTypeReference},
			},
			{
				Key:         "userChatInput",
				Label:       "core.input.userChatInput",
				ValueType:   models.ValueTypeString,
				Required:    true,
				RenderTypes: []models.RenderType{models.RenderTypeReference},
			},
			{
				Key:         "quoteQA",
				Label:       "core.input.quoteQA",
				ValueType:   models.ValueTypeDatasetQuote,
				RenderTypes: []models.RenderType{models.RenderTypeReference, models.RenderTypeHidden},
			},
		},
		Outputs: []models.NodeOutput{
			{Key: "answerText", Label: "core.output.answerText", ValueType: models.ValueTypeString},
			{Key: "history", Label: "core.output.history", ValueType: models.ValueTypeChatHistory},
		},
	}
}

func datasetSearchTemplate() *models.NodeTemplate {
	return &models.NodeTemplate{
		Kind:     KindDatasetSearch,
		Name:     "core.template.datasetSearch",
		Intro:    "core.template.datasetSearch.intro",
		Category: models.TemplateCategoryAI,
		Version:  "1.1",
		Inputs: []models.NodeInput{
			{
				Key:         "datasets",
				Label:       "core.input.datasets",
				ValueType:   models.ValueTypeArrayString,
				Required:    true,
				RenderTypes: []models.RenderType{models.RenderTypeSelect},
			},
			{
				Key:         "similarity",
				Label:       "core.input.similarity",
				ValueType:   models.ValueTypeNumber,
				RenderTypes: []models.RenderType{models.RenderTypeNumberInput},
				Value:       0.4,
			},
			{
				Key:         "userChatInput",
				Label:       "core.input.userChatInput",
				ValueType:   models.ValueTypeString,
				Required:    true,
				RenderTypes: []models.RenderType{models.RenderTypeReference},
			},
		},
		Outputs: []models.NodeOutput{
			{Key: "quoteQA", Label: "core.output.quoteQA", ValueType: models.ValueTypeDatasetQuote},
			{Key: "isEmpty", Label: "core.output.isEmpty", ValueType: models.ValueTypeBoolean},
		},
	}
}

func answerTemplate() *models.NodeTemplate {
	return &models.NodeTemplate{
		Kind:     KindAnswer,
		Name:     "core.template.answer",
		Intro:    "core.template.answer.intro",
		Category: models.TemplateCategoryInteraction,
		Version:  "1.0",
		Inputs: []models.NodeInput{
			{
				Key:         "text",
				Label:       "core.input.answerText",
				ValueType:   models.ValueTypeAny,
				Required:    true,
				RenderTypes: []models.RenderType{models.RenderTypeTextarea, models.RenderTypeReference},
			},
		},
	}
}

func httpRequestTemplate() *models.NodeTemplate {
	return &models.NodeTemplate{
		Kind:     KindHTTPRequest,
		Name:     "core.template.httpRequest",
		Intro:    "core.template.httpRequest.intro",
		Category: models.TemplateCategoryTools,
		Version:  "1.3",
		Inputs: []models.NodeInput{
			{
				Key:         "url",
				Label:       "core.input.httpUrl",
				ValueType:   models.ValueTypeString,
				Required:    true,
				RenderTypes: []models.RenderType{models.RenderTypeInput},
			},
			{
				Key:         "method",
				Label:       "core.input.httpMethod",
				ValueType:   models.ValueTypeString,
				RenderTypes: []models.RenderType{models.RenderTypeSelect},
				Value:       "POST",
			},
			{
				Key:         "body",
				Label:       "core.input.httpBody",
				ValueType:   models.ValueTypeObject,
				RenderTypes: []models.RenderType{models.RenderTypeJSONEditor, models.RenderTypeReference},
			},
			{
				Key:         "system_addInputParam",
				Label:       "core.input.addInputParam",
				ValueType:   models.ValueTypeAny,
				RenderTypes: []models.RenderType{models.RenderTypeAddInputParam},
			},
		},
		Outputs: []models.NodeOutput{
			{Key: "response", Label: "core.output.httpResponse", ValueType: models.ValueTypeObject},
			{Key: "statusCode", Label: "core.output.httpStatusCode", ValueType: models.ValueTypeNumber},
		},
	}
}

func variableSetTemplate() *models.NodeTemplate {
	return &models.NodeTemplate{
		Kind:     KindVariableSet,
		Name:     "core.template.variableSet",
		Intro:    "core.template.variableSet.intro",
		Category: models.TemplateCategorySystem,
		Version:  "1.0",
		Inputs: []models.NodeInput{
			{
				Key:         "variable",
				Label:       "core.input.variable",
				ValueType:   models.ValueTypeString,
				Required:    true,
				RenderTypes: []models.RenderType{models.RenderTypeSelect},
			},
			{
				Key:         "value",
				Label:       "core.input.variableValue",
				ValueType:   models.ValueTypeAny,
				Required:    true,
				RenderTypes: []models.RenderType{models.RenderTypeInput, models.RenderTypeReference},
			},
		},
	}
}

func customToolTemplate() *models.NodeTemplate {
	return &models.NodeTemplate{
		Kind:     KindCustomTool,
		Name:     "core.template.customTool",
		Intro:    "core.template.customTool.intro",
		Category: models.TemplateCategoryTools,
		Version:  "1.1",
		Inputs: []models.NodeInput{
			{
				Key:         "toolDescription",
				Label:       "core.input.toolDescription",
				ValueType:   models.ValueTypeString,
				Required:    true,
				RenderTypes: []models.RenderType{models.RenderTypeTextarea},
			},
			{
				Key:         "system_addInputParam",
				Label:       "core.input.addInputParam",
				ValueType:   models.ValueTypeAny,
				RenderTypes: []models.RenderType{models.RenderTypeAddInputParam},
			},
		},
		Outputs: []models.NodeOutput{
			{Key: "result", Label: "core.output.toolResult", ValueType: models.ValueTypeString},
		},
	}
}
