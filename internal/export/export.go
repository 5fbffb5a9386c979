// Package export writes archived daily reports as semicolon-delimited CSV
// that the daily report parser can read back.
package export

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/xtraders/tradelog/internal/daily"
	"github.com/xtraders/tradelog/internal/errors"
	"github.com/xtraders/tradelog/internal/models"
)

// Header is the export column order.
var Header = []string{
	daily.ColData,
	daily.ColRobo,
	daily.ColOperacao,
	daily.ColHoraEntrada,
	daily.ColHoraSaida,
	daily.ColPrecoEntrada,
	daily.ColParcial,
	daily.ColPrecoSaida,
	daily.ColContratos,
	daily.ColResultado,
}

const separator = ";"

// FormatNumber renders v in its shortest form with a comma decimal
// separator, e.g. -7.25 -> "-7,25".
func FormatNumber(v float64) string {
	return strings.Replace(decimal.NewFromFloat(v).String(), ".", ",", 1)
}

// Rows flattens reports into export rows, header excluded. Robots appear
// in roster order followed by ad-hoc robots.
func Rows(reports []models.DailyReportData) [][]string {
	var rows [][]string
	for _, report := range reports {
		for _, name := range report.RobotNames() {
			robot := report.Robots[name]
			if robot == nil {
				continue
			}
			for _, t := range robot.Trades {
				rows = append(rows, []string{
					report.Date,
					robot.Name,
					t.Operacao,
					t.HoraEntrada,
					t.HoraSaida,
					t.PrecoEntrada,
					t.Parcial,
					t.PrecoSaida,
					FormatNumber(t.Contratos),
					FormatNumber(t.Resultado),
				})
			}
		}
	}
	return rows
}

// Write encodes reports to w in Windows-1252, the encoding every importer
// assumes. Characters outside that charset are replaced.
func Write(w io.Writer, reports []models.DailyReportData) error {
	if len(reports) == 0 {
		return errors.Wrap(errors.ErrDataNotFound, "no reports to export")
	}

	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	tw := transform.NewWriter(w, enc)
	bw := bufio.NewWriter(tw)

	lines := append([][]string{Header}, Rows(reports)...)
	for i, row := range lines {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(strings.Join(row, separator)); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return tw.Close()
}

// HistoryFilename names an export of the whole archive.
func HistoryFilename(now time.Time) string {
	return "XTRADERS_Historico_" + now.Format("20060102") + ".csv"
}

// ReportFilename names an export of a single report.
func ReportFilename(report *models.DailyReportData) string {
	return "XTRADERS_Relatorio_" + strings.ReplaceAll(report.Date, ".", "") + ".csv"
}
