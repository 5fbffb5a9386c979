package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xtraders/tradelog/internal/calendar"
	"github.com/xtraders/tradelog/internal/models"
)

func newCalendarCmd(app *App) *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Monthly calendar of ledger results",
		Example: `  xtraders calendar
  xtraders calendar --months 3 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			data, err := app.Ledger.Load(cmd.Context())
			if err != nil {
				output.Error("Failed to load ledger: %v", err)
				return err
			}
			view := calendar.Organize(data)
			if months > 0 && len(view) > months {
				view = view[:months]
			}

			if output.IsJSON() {
				return output.JSON(view)
			}
			if len(view) == 0 {
				output.Info("The ledger is empty.")
				return nil
			}
			for _, m := range view {
				printMonth(output, m)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 0, "show only the most recent N months")
	return cmd
}

func printMonth(output *Output, m calendar.Month) {
	output.Printf("%s  %s\n", output.BoldText(m.Name+" "+m.Year), output.FormatPnL(m.Total))
	output.Dim("%d trading day(s)", m.Days)

	table := NewTable(output, calendar.WeekdayNames[:]...)
	for _, week := range m.Weeks {
		cells := make([]string, len(week))
		for i, d := range week {
			cells[i] = dayCell(output, d)
		}
		table.AddRow(cells...)
	}
	table.Render()

	for _, name := range models.AutomationRobots {
		if v, ok := m.RobotTotals[name]; ok && v != 0 {
			output.Printf("  %-12s %s\n", name, output.FormatPnL(v))
		}
	}
	output.Println()
}

func dayCell(output *Output, d calendar.Day) string {
	if d.Day == 0 {
		return ""
	}
	label := strconv.Itoa(d.Day)
	if !d.HasOperation || d.Total == nil {
		return output.DimText(label)
	}
	return fmt.Sprintf("%s %s", label, output.FormatPnL(*d.Total))
}
