// Package template discovers, loads, and compiles validation rule
// templates into engine-ready configurations.
//
// Templates come from three scopes: builtin (embedded in the binary),
// user (per-user config directory), and project (a templates/
// directory inside the open project). A template is one YAML or TOML
// file; overlay templates are deep-merged on top of a generic base
// before per-column resolution.
package template
