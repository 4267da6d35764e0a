package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildingsCmd = &cobra.Command{
	Use:   "buildings",
	Short: "List the known buildings",
	Long: `List the building directory used to resolve building codes and names.

The built-in directory can be replaced with a rules file (--rules or
AIMREPORT_RULES_FILE).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), renderBuildings(rules.Buildings, defaultTheme))
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "two-digit floors: %t\n", rules.TwoDigitFloors)
		}
		return nil
	},
}
