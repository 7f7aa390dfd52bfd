// Package types defines the core data model shared by all tablecheck
// packages: severities, issue statuses, issues, patches, and the
// action log entry. It must stay free of side effects and of imports
// from the rest of the module so every package can depend on it.
package types
