package validators

import (
	"errors"
	"sort"
	"strings"
)

// ErrValidation is matched with errors.Is by every [*ValidationError].
var ErrValidation = errors.New("validation failed")

// ValidationError carries a human readable message per invalid field. Field
// names are the JSON names of the struct fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
