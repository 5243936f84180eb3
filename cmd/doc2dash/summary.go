package main

import (
	"github.com/dustin/go-humanize"

	"doc2dash/internal/index"
)

func renderSummary(counts []index.TypeCount) string {
	rows := make([][]string, 0, len(counts))
	total := 0
	for _, c := range counts {
		rows = append(rows, []string{c.Type, humanize.Comma(int64(c.Count))})
		total += c.Count
	}
	return renderTable(
		[]string{"Type", "Entries"},
		rows,
		[]string{"Total", humanize.Comma(int64(total))},
		[]columnAlignment{alignLeft, alignRight},
	)
}
