package main

import (
	"fmt"

	"github.com/arthur-debert/tablecheck/pkg/template"
	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	var (
		typeFilter string
		projectDir string
	)

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List available configuration templates",
		Long: `Templates lists every configuration template visible from the current
scopes: builtin, user (` + template.UserTemplatesDir() + `),
and project when --project-dir is given.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			mgr := template.NewManager(projectDir)
			infos := mgr.ListTemplates(typeFilter)
			if len(infos) == 0 {
				fmt.Println("No templates found.")
				return
			}
			for _, info := range infos {
				marker := ""
				if info.ReadOnly {
					marker = render(styleMuted, " (read-only)")
				}
				fmt.Printf("%-24s %-8s %-8s %s%s\n",
					info.ID, info.Scope, info.Type, info.Name, marker)
			}
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "", "Only show templates of this type (generic or overlay)")
	cmd.Flags().StringVar(&projectDir, "project-dir", "", "Directory holding project-scope templates")

	return cmd
}
