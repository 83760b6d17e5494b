package theme

import "embed"

// EmbeddedThemes ships the built-in theme definitions.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS
