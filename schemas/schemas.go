// Package schemas embeds the JSON Schemas used to validate configuration files.
package schemas

import _ "embed"

// ConfigSchemaJSON is the JSON Schema for .versus.yaml.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
