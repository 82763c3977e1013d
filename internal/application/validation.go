package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "sceneName" -> "scene name")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "sceneID" -> "scene ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"sceneID":      "scene ID",
		"sceneName":    "scene name",
		"historyIndex": "history index",
		"dailyGoal":    "daily goal",
		"title":        "title",
		"name":         "name",
		"query":        "query",
		"format":       "format",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidatePositive checks that an integer field is greater than zero
func ValidatePositive(fieldName string, value int) error {
	if value <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be greater than zero, got: %d", formatFieldName(fieldName), value),
		}
	}
	return nil
}

// ValidateNonNegative checks that an integer field is zero or greater
func ValidateNonNegative(fieldName string, value int) error {
	if value < 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must not be negative, got: %d", formatFieldName(fieldName), value),
		}
	}
	return nil
}
