package static

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// File is the top-level structure of a catalog file.
type File struct {
	Websites []Website `yaml:"websites" json:"websites"`
}

// Website is one catalog file record.
type Website struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	URL         string `yaml:"url" json:"url"`
	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
	Favicon     string `yaml:"favicon,omitempty" json:"favicon,omitempty"`
	Color       string `yaml:"color,omitempty" json:"color,omitempty"`
}

const schemaName = "catalog.schema.json"

//go:embed catalog.schema.json
var schemaData string

var catalogSchema = jsonschema.MustCompileString(schemaName, schemaData)

// ValidationError lists every schema violation of a catalog file.
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation failed: %s", e.Errors[0])
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// validate checks a decoded document against the catalog schema.
func validate(doc interface{}) error {
	err := catalogSchema.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return ValidationError{Errors: []string{err.Error()}}
	}

	var messages []string
	collectCauses(verr, &messages)
	if len(messages) == 0 {
		messages = append(messages, verr.Message)
	}
	return ValidationError{Errors: messages}
}

// collectCauses flattens the leaf errors, prefixed with their location.
func collectCauses(verr *jsonschema.ValidationError, out *[]string) {
	if len(verr.Causes) == 0 {
		loc := verr.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, verr.Message))
		return
	}
	for _, cause := range verr.Causes {
		collectCauses(cause, out)
	}
}
