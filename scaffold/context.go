package scaffold

import (
	"encoding/json"
	"strings"
)

// TemplateContext maps placeholder names to their values.
type TemplateContext map[string]any

func pascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})

	var b strings.Builder

	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}

	return b.String()
}

// jsonString escapes s for use between the quotes of a JSON string.
func jsonString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}

	return strings.TrimSuffix(strings.TrimPrefix(string(b), `"`), `"`)
}

func NewTemplateContext(cfg ProjectConfig) TemplateContext {
	transport := cfg.Transport.String()

	return TemplateContext{
		"name":                cfg.Name,
		"description":         cfg.Description,
		"descriptionJSON":     jsonString(cfg.Description),
		"transport":           transport,
		"transportPascalCase": pascalCase(transport),
		"transportLowerCase":  strings.ToLower(transport),
		"transportUpperCase":  strings.ToUpper(transport),
		"includeExamples":     cfg.IncludeExamples,
	}
}
