package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(taxonomyCmd)
}

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy <taxid>",
	Short: "Look up the scientific name for a taxonomic ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		client := newClient(cfg, cfg.Email, cfg.APIKey)
		name, err := client.LookupOrganism(cmd.Context(), args[0])
		if err != nil {
			slog.Error("taxonomy lookup failed", "taxid", args[0], "error", err)
			fmt.Println("No taxonomy record found.")
			return nil
		}
		fmt.Fprintf(os.Stdout, "%s (TaxID: %s)\n", name, args[0])
		return nil
	},
}
