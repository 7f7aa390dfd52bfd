package template

import "embed"

// Builtin templates shipped with the binary. They are read-only;
// users copy them into the user or project scope to customize.
//
//go:embed builtin/*.yml
var builtinFS embed.FS
