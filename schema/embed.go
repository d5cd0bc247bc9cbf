// Package schema provides embedded JSON schemas for gantry descriptors and acceptance suites.
package schema

import "embed"

// FS contains the embedded schema files.
//
//go:embed *.schema.json
var FS embed.FS
