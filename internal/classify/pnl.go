package classify

import (
	"strings"

	"pouch-dashboard/internal/ingest"
	"pouch-dashboard/internal/models"
)

// BuildStatement filters and classifies a P&L export. The first header is
// the account label column and up to twelve following columns are months; a
// trailing "Total" column is never read as a month. Blank labels, subtotal
// lines and rows that are zero in every month are dropped.
func BuildStatement(table models.Table, c *Classifier) models.PLStatement {
	if len(table.Header) == 0 {
		return models.PLStatement{}
	}
	if c == nil {
		c = NewClassifier()
	}

	labelCol := table.Header[0]
	months := monthColumns(table.Header[1:])

	stmt := models.PLStatement{Months: months}
	for _, raw := range table.Rows {
		label := ingest.Text(raw[labelCol])
		if label == "" || IsRollupLabel(label) {
			continue
		}

		var row models.PLRow
		nonZero := false
		for i, month := range months {
			v := ingest.ParseAmount(raw[month])
			row.MonthlyValues[i] = v
			if v != 0 {
				nonZero = true
			}
		}
		if !nonZero {
			continue
		}

		row.AccountLabel = label
		row.Category = c.Classify(label)
		stmt.Rows = append(stmt.Rows, row)
	}
	return stmt
}

func monthColumns(cols []string) []string {
	months := make([]string, 0, models.MonthsPerYear)
	for _, col := range cols {
		if len(months) == models.MonthsPerYear {
			break
		}
		if strings.EqualFold(strings.TrimSpace(col), "total") {
			break
		}
		months = append(months, col)
	}
	return months
}
