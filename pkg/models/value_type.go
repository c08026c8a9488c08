package models

// ValueType is the closed enumeration of types a port or variable can carry.
type ValueType string

const (
	ValueTypeString       ValueType = "string"
	ValueTypeNumber       ValueType = "number"
	ValueTypeBoolean      ValueType = "boolean"
	ValueTypeObject       ValueType = "object"
	ValueTypeArrayString  ValueType = "arrayString"
	ValueTypeArrayNumber  ValueType = "arrayNumber"
	ValueTypeArrayBoolean ValueType = "arrayBoolean"
	ValueTypeArrayObject  ValueType = "arrayObject"
	ValueTypeAny          ValueType = "any"

	// Domain-specific carriers used by chat nodes.
	ValueTypeChatHistory  ValueType = "chatHistory"
	ValueTypeDatasetQuote ValueType = "datasetQuote"
)

var arrayElems = map[ValueType]ValueType{
	ValueTypeArrayString:  ValueTypeString,
	ValueTypeArrayNumber:  ValueTypeNumber,
	ValueTypeArrayBoolean: ValueTypeBoolean,
	ValueTypeArrayObject:  ValueTypeObject,
}

// Elem returns the element type for array value types. A scalar output is
// accepted wherever its array type is requested, so consumers use this to
// widen filters.
func (v ValueType) Elem() (ValueType, bool) {
	elem, ok := arrayElems[v]

	return elem, ok
}

// RenderType identifies the edit widget an input offers in the editor.
type RenderType string

const (
	RenderTypeInput       RenderType = "input"
	RenderTypeTextarea    RenderType = "textarea"
	RenderTypeNumberInput RenderType = "numberInput"
	RenderTypeSwitch      RenderType = "switch"
	RenderTypeSelect      RenderType = "select"
	RenderTypeJSONEditor  RenderType = "JSONEditor"
	RenderTypeHidden      RenderType = "hidden"

	// RenderTypeReference wires the input to another node's output or a
	// workflow variable instead of a literal value.
	RenderTypeReference RenderType = "reference"

	// RenderTypeAddInputParam marks a dynamic input: the user may add
	// arbitrary extra input ports the static template does not declare.
	RenderTypeAddInputParam RenderType = "addInputParam"
)
