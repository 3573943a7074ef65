package llm

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/yassu-studio/internal/schemas"
)

// Decode cleans a raw model response, validates it against the named embedded schema
// and unmarshals it into T. Any failure is reported as *DecodeError.
func Decode[T any](raw, schemaName string) (T, error) {
	var out T

	cleaned := strings.TrimSpace(CleanJSONBlock(raw))
	if cleaned == "" {
		return out, &DecodeError{Schema: schemaName, Message: "empty response"}
	}

	if err := schemas.Validate(schemaName, cleaned); err != nil {
		var loadErr *schemas.SchemaLoadError
		if errors.As(err, &loadErr) {
			return out, &DecodeError{Schema: schemaName, Message: "schema unavailable", Cause: err}
		}
		return out, &DecodeError{Schema: schemaName, Message: "response does not match schema", Cause: err}
	}

	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return out, &DecodeError{Schema: schemaName, Message: "failed to unmarshal response", Cause: err}
	}
	return out, nil
}
