// Package rules contains the builtin validation predicates. Each rule
// registers itself into the engine's default registry at init time;
// importing this package (usually blank) is what makes the builtin
// rule set available.
//
// Rules are dormant unless the column settings they key on are
// present: a regex rule without a configured regex, a required rule
// on a column not marked required, and so on, all report nothing.
package rules
