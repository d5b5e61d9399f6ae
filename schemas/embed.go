// Package schemas holds the JSON Schema documents for configuration files and output artifacts.
package schemas

import "embed"

// Files contains every *.schema.json document in this directory.
//
//go:embed *.schema.json
var Files embed.FS
