package api

import (
	"fmt"
	"sort"
	"strings"
)

// AuthError covers rejected credentials and expired or malformed sessions.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return "authentication failed"
	}
	return e.Message
}

// ValidationError bundles field-level messages from a rejected write, for
// example an email conflict on register.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(e.Fields[k]) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k][0]))
		}
	}
	return strings.Join(parts, "; ")
}

// FieldMessage returns the first message recorded for a field, if any.
func (e *ValidationError) FieldMessage(field string) string {
	msgs := e.Fields[field]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NetworkError wraps transport failures and unexpected statuses. No request
// is ever retried; every failure is terminal for that user action.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
