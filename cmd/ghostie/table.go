package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// column describes one table column. MaxWidth of zero leaves the column
// unbounded; longer cells are trimmed.
type column struct {
	Header   string
	Align    columnAlignment
	MaxWidth int
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := make([]column, len(headers))
	for i, h := range headers {
		columns[i] = column{Header: h}
		if i < len(aligns) {
			columns[i].Align = aligns[i]
		}
	}
	return renderColumns(columns, rows)
}

func renderColumns(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.Header
		align := text.AlignLeft
		if c.Align == alignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		}
		if c.MaxWidth > 0 {
			configs[i].WidthMax = c.MaxWidth
			configs[i].WidthMaxEnforcer = text.Trim
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}
