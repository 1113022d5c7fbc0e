package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rangelab/rangebridge/internal/mcpserver/tools"
	"github.com/spf13/cobra"
)

func toolsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tool catalog the bridge advertises",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := tools.NewRegistry()
			tools.RegisterAll(registry)
			catalog := registry.List()

			if asJSON {
				data, err := json.MarshalIndent(catalog, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			for _, tool := range catalog {
				fmt.Printf("%-24s %s\n", tool.Name, tool.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON with input schemas")
	return cmd
}
