package cli

import (
	"github.com/spf13/cobra"

	"github.com/xtraders/tradelog/internal/ledger"
	"github.com/xtraders/tradelog/internal/models"
	"github.com/xtraders/tradelog/internal/store"
)

// LedgerRow is one day of the ledger listing.
type LedgerRow struct {
	Day        string             `json:"day"`
	TotalDia   float64            `json:"totalDia"`
	Cumulative float64            `json:"cumulative"`
	Robots     map[string]float64 `json:"robots"`
}

func newLedgerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Per-day ledger of robot results",
		Long:  "List, total and delete the days recorded by 'xtraders daily import'.",
	}

	cmd.AddCommand(newLedgerListCmd(app))
	cmd.AddCommand(newLedgerDeleteCmd(app))
	cmd.AddCommand(newLedgerTotalCmd(app))

	return cmd
}

func newLedgerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ledger days, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			output := NewOutput(cmd)

			data, err := app.Ledger.Load(ctx)
			if err != nil {
				output.Error("Failed to load ledger: %v", err)
				return err
			}
			rows := ledgerRows(data)

			if output.IsJSON() {
				return output.JSON(rows)
			}
			if len(rows) == 0 {
				output.Info("The ledger is empty. Import a report with 'xtraders daily import FILE'.")
				return nil
			}

			headers := append([]string{"DAY"}, models.AutomationRobots...)
			headers = append(headers, "TOTAL", "CUMULATIVE")
			table := NewTable(output, headers...)
			for i := 1; i < len(headers); i++ {
				table.AlignRight(i)
			}
			for _, row := range rows {
				cells := []string{row.Day}
				for _, name := range models.AutomationRobots {
					cells = append(cells, output.FormatPnL(row.Robots[name]))
				}
				cells = append(cells, output.FormatPnL(row.TotalDia), FormatBRL(row.Cumulative))
				table.AddRow(cells...)
			}
			table.Render()

			if updated, err := app.Store.UpdatedAt(ctx, store.KeyHistorical); err == nil && !updated.IsZero() {
				output.Dim("Last updated %s", updated.Local().Format("02/01/2006 15:04"))
			}
			return nil
		},
	}
}

func newLedgerDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete DAY",
		Short:   "Delete one day from the ledger",
		Example: `  xtraders ledger delete 07.03.2025`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			key := ledger.DayKey(args[0])

			data, err := app.Ledger.Delete(cmd.Context(), key)
			if err != nil {
				output.Error("Failed to delete %s: %v", key, err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"deleted": key, "days": len(data)})
			}
			output.Success("✓ Deleted %s", key)
			return nil
		},
	}
}

func newLedgerTotalCmd(app *App) *cobra.Command {
	var until string

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Cumulative ledger result",
		Example: `  xtraders ledger total
  xtraders ledger total --until 07.03.2025`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			data, err := app.Ledger.Load(cmd.Context())
			if err != nil {
				output.Error("Failed to load ledger: %v", err)
				return err
			}
			upTo := until
			if upTo == "" {
				dates := ledger.SortedDates(data)
				if len(dates) == 0 {
					if output.IsJSON() {
						return output.JSON(map[string]interface{}{"until": "", "total": 0})
					}
					output.Info("The ledger is empty.")
					return nil
				}
				upTo = dates[len(dates)-1]
			}
			upTo = ledger.DayKey(upTo)
			total := ledger.CumulativeTotal(data, upTo)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"until": upTo, "total": total})
			}
			output.Printf("Cumulative result until %s: %s\n", upTo, output.FormatPnL(total))
			return nil
		},
	}

	cmd.Flags().StringVar(&until, "until", "", "last day to include (DD.MM.YYYY)")
	return cmd
}

func ledgerRows(data models.HistoricalData) []LedgerRow {
	dates := ledger.SortedDates(data)
	rows := make([]LedgerRow, 0, len(dates))
	var cumulative float64
	for _, day := range dates {
		entry := data[day]
		cumulative += entry.TotalDia
		rows = append(rows, LedgerRow{
			Day:        day,
			TotalDia:   entry.TotalDia,
			Cumulative: cumulative,
			Robots:     entry.Robots,
		})
	}
	return rows
}
