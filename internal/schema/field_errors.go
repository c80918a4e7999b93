package schema

import (
	"errors"
	"strings"
)

// FieldError is a single rule violation attributed to a field path such as
// activities.2.location.latitude. The root of the document has an empty path.
type FieldError struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// FieldErrors collects every violation found in one validation pass.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		if fe.Path == "" {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fe.Path+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e FieldErrors) Paths() []string {
	paths := make([]string, 0, len(e))
	for _, fe := range e {
		paths = append(paths, fe.Path)
	}
	return paths
}

// Has reports whether a violation was recorded exactly at path.
func (e FieldErrors) Has(path string) bool {
	for _, fe := range e {
		if fe.Path == path {
			return true
		}
	}
	return false
}

// covers reports whether path, or one of its parents, already failed.
func (e FieldErrors) covers(path string) bool {
	for _, fe := range e {
		if fe.Path == path || strings.HasPrefix(path, fe.Path+".") {
			return true
		}
	}
	return false
}

// AsFieldErrors unwraps err into FieldErrors when it carries them.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
