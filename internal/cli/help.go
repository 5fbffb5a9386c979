package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

type example struct {
	title    string
	commands []string
}

var workflows = []example{
	{
		title: "Analyze Robot Performance",
		commands: []string{
			"xtraders analyze *.csv                       # All files, all robots",
			"xtraders analyze *.csv --year 2025           # One year",
			"xtraders analyze *.csv --month 2025-03       # One month",
			"xtraders analyze *.csv --robot \"ORION WIN\"   # One robot",
			"xtraders analyze relatorio.csv --trades      # List the trades",
		},
	},
	{
		title: "Record a Trading Day",
		commands: []string{
			"xtraders daily parse \"XTRADERS 07.03.2025.csv\"   # Preview",
			"xtraders daily import \"XTRADERS 07.03.2025.csv\"  # Save to the ledger",
			"xtraders ledger list                             # Review the ledger",
		},
	},
	{
		title: "Monthly Review",
		commands: []string{
			"xtraders calendar --months 1                 # Current month grid",
			"xtraders ledger total --until 31.03.2025     # Result up to a day",
			"xtraders ledger delete 07.03.2025            # Drop a wrong import",
		},
	},
	{
		title: "Export",
		commands: []string{
			"xtraders export                              # Every archived report",
			"xtraders export --date 07.03.2025            # One day",
			"xtraders analyze *.csv --json > metrics.json # Metrics as JSON",
		},
	},
	{
		title: "Configuration",
		commands: []string{
			"xtraders config path                         # Config file location",
			"xtraders config show                         # Effective settings",
			"XTRADERS_DB_PATH=:memory: xtraders ledger list # Throwaway store",
		},
	},
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show usage examples",
		Long:  "Display common workflow examples.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Common Workflow Examples")
			output.Println()

			for _, ex := range workflows {
				output.Bold(ex.title)
				for _, c := range ex.commands {
					parts := strings.SplitN(c, "#", 2)
					if len(parts) == 2 {
						output.Printf("  %s %s\n", output.Cyan(strings.TrimSpace(parts[0])), output.DimText(strings.TrimSpace(parts[1])))
					} else {
						output.Printf("  %s\n", output.Cyan(c))
					}
				}
				output.Println()
			}
			return nil
		},
	}
}
