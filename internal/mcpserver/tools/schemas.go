package tools

// Common JSON Schema building blocks

// StringSchema creates a JSON schema for a string field
func StringSchema(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

// IntegerSchema creates a JSON schema for an integer field
func IntegerSchema(description string) map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": description,
	}
}

// BooleanSchema creates a JSON schema for a boolean field
func BooleanSchema(description string) map[string]any {
	return map[string]any{
		"type":        "boolean",
		"description": description,
	}
}

// ObjectSchema creates a JSON schema for an object with arbitrary properties
func ObjectSchema(description string) map[string]any {
	return map[string]any{
		"type":        "object",
		"description": description,
	}
}

// EnumSchema creates a JSON schema for an enum field
func EnumSchema(description string, values []string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
		"enum":        values,
	}
}

// ConfirmSchema is the explicit confirmation flag destructive tools require
func ConfirmSchema() map[string]any {
	return BooleanSchema("Must be true to confirm this destructive operation")
}

// BuildSchema creates a complete JSON schema object with properties and required fields
func BuildSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
