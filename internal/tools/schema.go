package tools

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// rawSchema reflects a tool's parameter struct into its JSON schema.
// Runs once per tool at startup; a reflection failure is a programming
// error, not a runtime condition.
func rawSchema(v any) json.RawMessage {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	data, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		panic(fmt.Sprintf("reflecting tool schema: %v", err))
	}
	return data
}
