package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrForbidden     = errors.New("you are not the owner of this resource")
	ErrSelfReference = errors.New("you cannot follow yourself")
)

// ValidationError carries one message per rejected field, nothing was written when it is returned.
type ValidationError struct {
	Fields map[string]string `json:"errors"`
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (v *ValidationError) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = make(map[string]string)
	}
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = message
	}
}

func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, v.Fields[k])
	}
	return strings.Join(messages, " ")
}

func notFound(kind string, id uint) error {
	return fmt.Errorf("%w: %s #%d", ErrNotFound, kind, id)
}
