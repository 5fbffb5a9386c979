package daily

import (
	"sort"
	"strconv"

	"github.com/xtraders/tradelog/internal/models"
)

// GroupPartials collapses the partial exits of robots that report them.
// Rows of such a robot sharing an entry time form one position: the result
// keeps the first row's entry, takes the last exit time, annotates the
// first exit as "price(contracts)" and sums contracts and results. Other
// robots pass through untouched, ahead of the grouped rows.
func GroupPartials(raw []models.DailyTrade) []models.DailyTrade {
	var (
		out    []models.DailyTrade
		keys   []string
		groups = make(map[string][]models.DailyTrade)
	)
	for _, t := range raw {
		if !models.HasPartials(t.RobotName) {
			out = append(out, t)
			continue
		}
		key := t.RobotName + "_" + t.HoraEntrada
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], t)
	}

	for _, key := range keys {
		group := groups[key]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		out = append(out, mergeGroup(group))
	}
	return out
}

func mergeGroup(group []models.DailyTrade) models.DailyTrade {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].HoraSaida < group[j].HoraSaida
	})
	first, last := group[0], group[len(group)-1]

	merged := models.DailyTrade{
		RobotName:    first.RobotName,
		Operacao:     first.Operacao,
		HoraEntrada:  first.HoraEntrada,
		HoraSaida:    last.HoraSaida,
		PrecoEntrada: first.PrecoEntrada,
		Parcial:      first.PrecoSaida + "(" + formatNumber(first.Contratos) + ")",
		PrecoSaida:   last.PrecoSaida + "(" + formatNumber(last.Contratos) + ")",
	}
	for _, t := range group {
		merged.Contratos += t.Contratos
		merged.Resultado += t.Resultado
	}
	return merged
}

// formatNumber renders the shortest decimal form, e.g. 2 -> "2", 1.5 -> "1.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
