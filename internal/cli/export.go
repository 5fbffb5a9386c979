package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xtraders/tradelog/internal/errors"
	"github.com/xtraders/tradelog/internal/export"
	"github.com/xtraders/tradelog/internal/logging"
	"github.com/xtraders/tradelog/internal/models"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		date string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export archived daily reports as CSV",
		Long: `Write archived daily reports in the daily report format, so the file can be
imported again with 'xtraders daily import'.

Without --date every archived report is exported.`,
		Example: `  xtraders export
  xtraders export --date 07.03.2025 --out marco.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			output := NewOutput(cmd)
			logger := logging.WithOperation(logging.FromContext(ctx), "export")

			var reports []models.DailyReportData
			if date != "" {
				report, err := app.Archive.Find(ctx, date)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				reports = []models.DailyReportData{*report}
				if out == "" {
					out = export.ReportFilename(report)
				}
			} else {
				all, err := app.Archive.Load(ctx)
				if err != nil {
					output.Error("Failed to load archive: %v", err)
					return err
				}
				reports = all
				if out == "" {
					out = export.HistoryFilename(time.Now())
				}
			}

			err := writeExport(out, reports)
			logging.LogExport(logger, out, len(reports), err)
			if err != nil {
				output.Error("Export failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"path": out, "reports": len(reports)})
			}
			output.Success("✓ Exported %d report(s) to %s", len(reports), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "export only the report of this day (DD.MM.YYYY)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: generated name)")
	return cmd
}

func writeExport(path string, reports []models.DailyReportData) error {
	if len(reports) == 0 {
		return errors.Wrap(errors.ErrDataNotFound, "no archived reports")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := export.Write(f, reports); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
