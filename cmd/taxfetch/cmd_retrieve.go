package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/taxfetch/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(retrieveCmd)
}

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Search, filter and report nucleotide records for a taxonomic ID",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		scanner := bufio.NewScanner(os.Stdin)

		// 1. Contact email
		email := prompt(scanner, "Enter your email address for NCBI", cfg.Email)

		// 2. API key
		apiKey := prompt(scanner, "Enter your NCBI API key", cfg.APIKey)

		// 3. Taxonomic ID
		taxid := prompt(scanner, "Enter taxonomic ID (taxid) of the organism", "")
		if taxid == "" {
			return fmt.Errorf("taxonomic ID is required")
		}

		// 4-5. Length bounds
		minLen, err := promptInt(scanner, "Enter minimum sequence length")
		if err != nil {
			return err
		}
		maxLen, err := promptInt(scanner, "Enter maximum sequence length")
		if err != nil {
			return err
		}

		client := newClient(cfg, email, apiKey)
		p := pipeline.New(client, cfg.OutputDir)
		return p.Run(cmd.Context(), pipeline.Params{
			TaxID:  taxid,
			MinLen: minLen,
			MaxLen: maxLen,
		})
	},
}

// prompt displays a labeled prompt with a default value and reads user input.
// If the user enters nothing, the default is returned.
func prompt(scanner *bufio.Scanner, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("%s: ", label)
	}
	if scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input != "" {
			return input
		}
	}
	return defaultVal
}

// promptInt reads one integer. Non-numeric input is a fatal input error.
func promptInt(scanner *bufio.Scanner, label string) (int, error) {
	raw := prompt(scanner, label, "")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("sequence length %q is not an integer", raw)
	}
	return n, nil
}
