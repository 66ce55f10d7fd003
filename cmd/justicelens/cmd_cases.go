package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/catalog"
)

var casesFlags struct {
	json bool
}

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List the case titles in catalog order",
	RunE:  runCases,
}

func init() {
	casesCmd.Flags().BoolVar(&casesFlags.json, "json", false, "Print the full case records as JSON")
}

func runCases(cmd *cobra.Command, _ []string) error {
	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	out := cmd.OutOrStdout()
	if casesFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cat.All())
	}

	for i, title := range cat.ListTitles() {
		fmt.Fprintf(out, "%d. %s\n", i+1, title)
	}
	return nil
}
