package store

import (
	"fmt"
	"strings"
)

// ValidationError reports required input that was missing or empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return e.Fields[0] + " is required"
	}
	return strings.Join(e.Fields, ", ") + " are required"
}

// ReferenceError reports input that points at a parent entity which does not exist.
type ReferenceError struct {
	Kind string
	ID   uint
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("referenced %s %d does not exist", e.Kind, e.ID)
}

// ConflictError reports a uniqueness violation on create.
type ConflictError struct {
	Kind  string
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Kind, e.Field, e.Value)
}

// NotFoundError reports a lookup of a top-level entity that does not exist.
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// RequireFields returns a ValidationError naming every empty value, or nil.
// Values are checked in the order given so the message is stable.
func RequireFields(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if f.empty() {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}

// Field pairs an input name with its value for RequireFields.
type Field struct {
	Name  string
	Value any
}

func (f Field) empty() bool {
	switch v := f.Value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case uint:
		return v == 0
	case int:
		return v == 0
	default:
		return false
	}
}
