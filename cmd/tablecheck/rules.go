package main

import (
	"fmt"

	"github.com/arthur-debert/tablecheck/pkg/engine"
	"github.com/spf13/cobra"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List registered validation rules",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			reg := engine.DefaultRules()
			for _, id := range reg.List() {
				rule, err := reg.Get(id)
				if err != nil {
					continue
				}
				scope := "column"
				if !rule.PerColumn() {
					scope = "table"
				}
				fmt.Printf("%-28s %-10s %-7s %s\n",
					rule.ID(),
					render(severityStyle(rule.DefaultSeverity()), string(rule.DefaultSeverity())),
					scope,
					rule.Name())
			}
		},
	}
}
