package config

import "github.com/invopop/jsonschema"

// Schema returns the JSON schema of a scenario file.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Scenario{})
}
