package cli

import (
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/xtraders/tradelog/internal/calendar"
	"github.com/xtraders/tradelog/internal/ingest"
	"github.com/xtraders/tradelog/internal/logging"
	"github.com/xtraders/tradelog/internal/models"
	"github.com/xtraders/tradelog/internal/performance"
)

var weekdayLabels = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// AnalysisResult is the JSON shape of the analyze command.
type AnalysisResult struct {
	Files   []models.LoadedFile     `json:"files"`
	Filter  performance.Filter      `json:"filter"`
	Options performance.Options     `json:"options"`
	Metrics performance.MetricsData `json:"metrics"`
	Trades  []models.Trade          `json:"trades,omitempty"`
}

func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		filter     performance.Filter
		showTrades bool
		exclude    []string
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Compute performance metrics from trade exports",
		Long: `Read balance-graph exports, broker trade reports and manual spreadsheets,
merge their trades and compute performance metrics.

Files are read concurrently. The format of each file is detected from its
header; files that match no format contribute no trades.`,
		Example: `  xtraders analyze "ZARION l conta.csv" relatorio.csv
  xtraders analyze *.csv --year 2025 --robot "ORION WIN"
  xtraders analyze relatorio.csv --month 2025-03 --trades --json
  xtraders analyze *.csv --exclude "ZARION l conta.csv"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			output := NewOutput(cmd)
			logger := logging.WithOperation(logging.FromContext(ctx), "analyze")

			start := time.Now()
			trades, err := app.Reader.ProcessFiles(ctx, args)
			if err != nil {
				output.Error("Failed to read files: %v", err)
				return err
			}
			logging.LogAnalysis(logger, len(args), len(trades), time.Since(start))

			session := ingest.NewSession()
			session.Add(trades)
			for _, name := range exclude {
				session.RemoveFile(filepath.Base(name))
			}
			all := session.Trades()
			filtered := filter.Apply(all)

			result := AnalysisResult{
				Files:   session.Files(),
				Filter:  filter,
				Options: performance.OptionsFor(all, filter.Year),
				Metrics: performance.Calculate(filtered, all, filter.RobotSelector()),
			}
			if showTrades {
				result.Trades = filtered
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			if len(filtered) == 0 {
				output.Warning("No trades found in %d file(s) for the selected filter", len(args))
				return nil
			}
			printAnalysis(output, result, filtered, showTrades)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Year, "year", performance.AllValues, "restrict to a year (YYYY)")
	cmd.Flags().StringVar(&filter.Month, "month", performance.AllValues, "restrict to a month (YYYY-MM)")
	cmd.Flags().StringVar(&filter.Robot, "robot", performance.AllValues, "restrict to a robot")
	cmd.Flags().BoolVar(&showTrades, "trades", false, "list the filtered trades")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "drop the trades of these files after loading")

	return cmd
}

func printAnalysis(output *Output, r AnalysisResult, filtered []models.Trade, showTrades bool) {
	m := r.Metrics

	output.Summary("Performance", []Field{
		{"Net profit", output.FormatPnL(m.NetProfit)},
		{"Trades", strconv.Itoa(len(filtered))},
		{"Win rate", FormatRate(m.WinRate)},
		{"Profit factor", FormatRatio(m.ProfitFactor)},
		{"Payoff", FormatRatio(m.Payoff)},
		{"Avg trade", output.FormatPnL(m.AvgTrade)},
		{"SQN", FormatRatio(m.SQN)},
		{"Max drawdown", output.FormatPnL(m.MaxDrawdown)},
	})
	output.Println()

	output.Printf("Best robot:  %s %s\n", m.BestRobot.Name, output.FormatPnL(m.BestRobot.Value))
	output.Printf("Worst robot: %s %s\n", m.WorstRobot.Name, output.FormatPnL(m.WorstRobot.Value))
	output.Printf("Best month:  %s %s\n", m.BestMonth.Name, output.FormatPnL(m.BestMonth.Value))
	output.Println()

	output.Bold("Files")
	files := NewTable(output, "FILE", "TRADES").AlignRight(1)
	for _, f := range r.Files {
		files.AddRow(f.Name, strconv.Itoa(f.Trades))
	}
	files.Render()
	output.Println()

	output.Bold("Robots")
	robots := NewTable(output, "ROBOT", "PROFIT", "TRADES", "WINS", "LOSSES", "WIN RATE").AlignRight(1, 2, 3, 4, 5)
	for _, rs := range m.RobotStats {
		robots.AddRow(rs.Name, output.FormatPnL(rs.TotalProfit), strconv.Itoa(rs.TotalTrades),
			strconv.Itoa(rs.Wins), strconv.Itoa(rs.Losses), FormatRate(rs.WinRate))
	}
	robots.Render()
	output.Println()

	output.Bold("Weekdays")
	weekdays := NewTable(output, "DAY", "RESULT").AlignRight(1)
	for i, v := range m.Weekday {
		if v != 0 {
			weekdays.AddRow(weekdayLabels[i], output.FormatPnL(v))
		}
	}
	weekdays.Render()
	output.Println()

	printHeatmap(output, m.Heatmap)

	if n := len(m.EquityCurve); n > 0 {
		last := m.EquityCurve[n-1]
		output.Dim("Equity on %s: %s over %d trading days", last.Date, FormatBRL(last.Equity), n)
	}

	if showTrades {
		output.Println()
		output.Bold("Trades")
		table := NewTable(output, "DATE", "ROBOT", "TICKET", "SYMBOL", "TYPE", "RESULT", "FILE").AlignRight(5)
		for _, t := range filtered {
			table.AddRow(t.Date, t.Robot, t.Ticket, t.Symbol, string(t.Type),
				output.FormatPnL(t.Value), TruncateString(t.SourceFile, 30))
		}
		table.Render()
	}
}

func printHeatmap(output *Output, heatmap map[string][]float64) {
	if len(heatmap) == 0 {
		return
	}
	years := make([]string, 0, len(heatmap))
	for y := range heatmap {
		years = append(years, y)
	}
	sort.Strings(years)

	output.Bold("Monthly results")
	table := NewTable(output, "YEAR", "MONTH", "RESULT").AlignRight(2)
	for _, y := range years {
		for i, v := range heatmap[y] {
			if v != 0 {
				table.AddRow(y, calendar.MonthNames[i], output.FormatPnL(v))
			}
		}
	}
	table.Render()
	output.Println()
}
