package cli

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xtraders/tradelog/internal/errors"
	"github.com/xtraders/tradelog/internal/ledger"
	"github.com/xtraders/tradelog/internal/logging"
	"github.com/xtraders/tradelog/internal/models"
)

func newDailyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Daily operation reports",
		Long: `Parse single-day operation reports and record them in the ledger.

A daily report is a ';'-separated file with one row per robot operation.
Partial exits of robots that report them are grouped into one position.`,
	}

	cmd.AddCommand(newDailyParseCmd(app))
	cmd.AddCommand(newDailyImportCmd(app))

	return cmd
}

func newDailyParseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "parse FILE",
		Short:   "Parse a daily report without saving it",
		Example: `  xtraders daily parse "XTRADERS 07.03.2025.csv"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			report, err := app.Parser.ParseFile(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(report)
			}
			printDailyReport(output, report)
			return nil
		},
	}
}

func newDailyImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Parse a daily report and record it in the ledger",
		Long: `Parse a daily report, archive it and replace the ledger entry for its day.

The ledger entry stores the result of every automation robot; manual
operations are archived with the report but never counted.`,
		Example: `  xtraders daily import "XTRADERS 07.03.2025.csv"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			output := NewOutput(cmd)
			logger := logging.WithOperation(logging.FromContext(ctx), "import")

			report, err := app.Parser.ParseFile(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if report.Date == "" {
				output.Warning("Report has no date; nothing was saved")
				return nil
			}

			data, archived, err := app.importReport(ctx, report)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			logging.LogImport(logger, filepath.Base(args[0]), report.Date, report.TotalAutomation, len(archived))

			key := ledger.DayKey(report.Date)
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"day":      key,
					"entry":    data[key],
					"archived": len(archived),
				})
			}
			output.Success("✓ Saved %s: %s", key, FormatBRL(data[key].TotalDia))
			output.Dim("%d report(s) archived, %d day(s) in the ledger", len(archived), len(data))
			return nil
		},
	}
}

// importReport records report in the ledger and then archives it. A
// failed ledger write leaves the archive untouched.
func (app *App) importReport(ctx context.Context, report *models.DailyReportData) (models.HistoricalData, []models.DailyReportData, error) {
	data, err := app.Ledger.Save(ctx, report)
	if err != nil {
		return nil, nil, errors.Wrap(err, "saving ledger")
	}
	archived, err := app.Archive.Prepend(ctx, report)
	if err != nil {
		return nil, nil, errors.Wrap(err, "archiving report")
	}
	return data, archived, nil
}

func printDailyReport(output *Output, report *models.DailyReportData) {
	date := report.Date
	if date == "" {
		date = "-"
	}
	output.Summary("Daily report "+date, []Field{
		{"Total automation", output.FormatPnL(report.TotalAutomation)},
		{"Manual", output.FormatPnL(report.Robots[models.ManualOperations].Result())},
	})
	output.Println()

	for _, name := range report.RobotNames() {
		robot := report.Robots[name]
		if len(robot.Trades) == 0 {
			continue
		}
		output.Printf("%s  %s\n", output.BoldText(name), output.FormatPnL(robot.Result()))
		output.Dim("%s", robot.Margem)

		table := NewTable(output, "OPERATION", "ENTRY", "EXIT", "ENTRY PRICE", "PARTIAL", "EXIT PRICE", "CONTRACTS", "RESULT").AlignRight(6, 7)
		for _, t := range robot.Trades {
			table.AddRow(t.Operacao, t.HoraEntrada, t.HoraSaida, t.PrecoEntrada, t.Parcial, t.PrecoSaida,
				strconv.FormatFloat(t.Contratos, 'f', -1, 64), output.FormatPnL(t.Resultado))
		}
		table.Render()
		output.Println()
	}
}
