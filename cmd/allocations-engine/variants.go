package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/allocations-engine/internal/search"
	"github.com/pdiddy/allocations-engine/internal/variants"
)

var variantsCmd = &cobra.Command{
	Use:   "variants <name...>",
	Short: "Print the matching variants of a person or institution name",
	Long: `Variants prints the spellings the correlator queries for a person name,
or with --institution the abbreviations and expansions it accepts for an
institution name. No network access is needed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		inst, _ := cmd.Flags().GetBool("institution")

		var out []string
		if inst {
			out = variants.Institutions(name)
		} else {
			out = variants.PersonNames(name)
		}
		if out == nil {
			out = []string{}
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return search.FormatJSON(out, cmd.OutOrStdout())
		}
		for _, v := range out {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	},
}

func init() {
	variantsCmd.Flags().Bool("institution", false, "treat the name as an institution")
	variantsCmd.Flags().Bool("json", false, "output variants as a JSON array")

	rootCmd.AddCommand(variantsCmd)
}
