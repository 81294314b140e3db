// Package embedded provides access to embedded theme and shell integration files.
package embedded

import _ "embed"

// DefaultThemeData contains the embedded default theme YAML data.
//
//go:embed themes/default.yaml
var DefaultThemeData []byte

// PlainThemeData contains the embedded plain theme YAML data.
//
//go:embed themes/plain.yaml
var PlainThemeData []byte
