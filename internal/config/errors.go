package config

import "fmt"

// ValidationError describes a setting with an invalid value.
type ValidationError struct {
	// Key is the setting key, e.g. "editor.tab_width".
	Key string
	// Message describes the problem.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Key, e.Message, e.Value)
}
