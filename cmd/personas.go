package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guruchat/guru/internal/persona"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List available chat personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range persona.Builtin().All() {
			fmt.Printf("%-10s %-20s %s\n", p.ID, p.Name, p.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(personasCmd)
}
