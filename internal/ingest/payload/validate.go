package payload

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SchemaError is one structural validation failure.
type SchemaError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SchemaValidator checks a payload's structure before the referential
// checker sees it. The storage-facing pipeline treats this as an external
// collaborator.
type SchemaValidator interface {
	Validate(f *CreditFile) (bool, []SchemaError)
}

type tagValidator struct {
	v *validator.Validate
}

// NewSchemaValidator returns the default validator, driven by the payload
// structs' validate tags.
func NewSchemaValidator() SchemaValidator {
	return &tagValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (tv *tagValidator) Validate(f *CreditFile) (bool, []SchemaError) {
	if f == nil {
		return false, []SchemaError{{Path: "", Message: "payload is empty"}}
	}
	err := tv.v.Struct(f)
	if err == nil {
		return true, nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false, []SchemaError{{Path: "", Message: err.Error()}}
	}
	out := make([]SchemaError, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace starts with the root struct name; drop it.
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		out = append(out, SchemaError{
			Path:    path,
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
		})
	}
	return false, out
}
