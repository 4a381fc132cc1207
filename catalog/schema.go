package catalog

import (
	"strings"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonwraymond/sciencedock/describe"
	"github.com/jonwraymond/sciencedock/task"
)

// ToolFor converts t into a tool in namespace. The input schema lists one
// property per declared input; the output schema lists one per output.
func ToolFor(t *task.Task, namespace string) model.Tool {
	desc := t.Description()
	doc := t.Describe()

	tags := []string{namespace, "task"}
	for _, in := range desc.Inputs() {
		tags = append(tags, string(in.Kind))
	}

	tool := model.Tool{
		Tool: mcp.Tool{
			Name:        t.ID(),
			Title:       cases.Title(language.English).String(desc.Name()),
			Description: toolDescription(desc),
			InputSchema: inputSchema(desc),
			Annotations: &mcp.ToolAnnotations{
				Title:        doc.Name,
				ReadOnlyHint: !writesFiles(desc),
			},
		},
		Namespace: namespace,
		Tags:      model.NormalizeTags(tags),
	}
	if out := outputSchema(desc); out != nil {
		tool.OutputSchema = out
	}
	return tool
}

func toolDescription(desc *describe.Description) string {
	if desc.Summary() == "" {
		return desc.Name()
	}
	return desc.Summary()
}

func inputSchema(desc *describe.Description) map[string]any {
	props := make(map[string]any)
	required := []any{}
	for _, in := range desc.Inputs() {
		prop := map[string]any{
			"type":  jsonType(in.Kind),
			"title": in.Name,
		}
		if in.Description != "" {
			prop["description"] = in.Description
		}
		if len(in.Values) > 0 && in.Kind == describe.KindStringEnum {
			prop["enum"] = append([]any(nil), in.Values...)
		} else if len(in.Values) > 0 {
			prop["examples"] = append([]any(nil), in.Values...)
		}
		if in.HasDefault && in.Default != nil {
			prop["default"] = in.Default
		}
		if in.Format != "" {
			prop["format"] = in.Format
		}
		if in.Min != nil {
			prop["minimum"] = *in.Min
		}
		if in.Max != nil {
			prop["maximum"] = *in.Max
		}
		if in.Step != nil {
			prop["multipleOf"] = *in.Step
		}
		props[in.ID] = prop
		if in.Required && !in.HasDefault {
			required = append(required, in.ID)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func outputSchema(desc *describe.Description) map[string]any {
	outputs := desc.Outputs()
	if len(outputs) == 0 {
		return nil
	}
	props := make(map[string]any, len(outputs))
	for _, out := range outputs {
		prop := map[string]any{
			"type":  jsonType(out.Kind),
			"title": out.Name,
		}
		if out.Description != "" {
			prop["description"] = out.Description
		}
		props[out.ID] = prop
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

// jsonType maps a parameter kind to its JSON Schema type.
func jsonType(k describe.Kind) string {
	switch k {
	case describe.KindBoolean:
		return "boolean"
	case describe.KindInteger:
		return "integer"
	case describe.KindNumber:
		return "number"
	default:
		return "string"
	}
}

func writesFiles(desc *describe.Description) bool {
	for _, out := range desc.Outputs() {
		if out.Kind == describe.KindNewFile {
			return true
		}
	}
	return false
}

// exampleArgs builds example arguments from declared defaults and the first
// allowed value of each enumeration.
func exampleArgs(desc *describe.Description) map[string]any {
	args := make(map[string]any)
	for _, in := range desc.Inputs() {
		switch {
		case in.HasDefault && in.Default != nil:
			args[in.ID] = in.Default
		case len(in.Values) > 0:
			args[in.ID] = in.Values[0]
		case in.Kind.IsFile():
			args[in.ID] = in.ID + ".csv"
		}
	}
	return args
}

// keywords returns lower-cased words describing the parameters, fed to the
// documentation notes so they are searchable.
func keywords(desc *describe.Description) string {
	var words []string
	for _, in := range desc.Inputs() {
		words = append(words, strings.ToLower(in.Name))
	}
	for _, out := range desc.Outputs() {
		words = append(words, strings.ToLower(out.Name))
	}
	return strings.Join(words, ", ")
}
