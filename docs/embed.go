// Copyright © 2025 The lispindent authors

// Package docs embeds the lispindent user guides for use by the CLI.
package docs

import _ "embed"

//go:embed indentation.md
var IndentGuide string
