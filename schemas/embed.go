// Package schemas embeds the JSON Schema documents for the artifacts the CLI
// reads and writes.
package schemas

import _ "embed"

// ReferenceProfile is the schema for reference profile JSON files.
//
//go:embed reference_profile.schema.json
var ReferenceProfile string

// Evaluation is the schema for the evaluation summary written by evaluate --summary.
//
//go:embed evaluation.schema.json
var Evaluation string
