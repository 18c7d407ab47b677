package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c360/fixedcap/errors"
)

//go:embed schema.json
var schemaJSON []byte

// Schema returns the JSON schema configuration files are checked against.
func Schema() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)
	return out
}

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema does not compile: %v", err))
	}
	return s
}

// ValidationError describes one schema violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validateSchema checks a decoded document against the embedded schema.
func validateSchema(doc any) ([]ValidationError, error) {
	result, err := compiledSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}

	problems := make([]ValidationError, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, ValidationError{Field: e.Field(), Message: e.Description()})
	}
	return problems, nil
}

func schemaError(problems []ValidationError, path string) error {
	parts := make([]string, 0, len(problems))
	for _, p := range problems {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Field, p.Message))
	}
	return errors.WrapInvalid(
		fmt.Errorf("%w: %s", errors.ErrInvalidConfig, strings.Join(parts, "; ")),
		"Loader", "Load", "schema validation of "+path)
}
