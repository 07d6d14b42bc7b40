package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sabilabs/sabi/internal/conceptgraph"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Validate the concept graph and show its learning order",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := conceptgraph.LoadDefault()
		if err != nil {
			return fmt.Errorf("load concept graph: %w", err)
		}

		subject, _ := cmd.Flags().GetString("subject")

		fmt.Printf("%-10s  %-30s  %-12s  %-20s  %s\n",
			"ID", "Concept", "Subject", "Grade", "Prerequisites")
		fmt.Println(strings.Repeat("─", 96))

		for _, c := range g.TopologicalOrder() {
			if subject != "" && c.Subject != subject {
				continue
			}
			prereqs := g.PrerequisitesOf(c.ID)
			list := "-"
			if len(prereqs) > 0 {
				list = strings.Join(prereqs, ", ")
			}
			fmt.Printf("%-10s  %-30s  %-12s  %-20s  %s\n",
				c.ID, c.Name, c.Subject, c.Grade, list)
		}
		return nil
	},
}

func init() {
	graphCmd.Flags().String("subject", "", "Only show one subject")
}
