// Package registry provides a generic, type-safe registry for
// managing named components such as validation rules. Components
// self-register through init() functions, but the registry itself is
// an explicit value passed into its consumers rather than hidden
// global state.
package registry
