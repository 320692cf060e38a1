package core

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/encodeous/routesim/state"
	"github.com/olekukonko/tablewriter"
)

func newPlainTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	return table
}

// WriteTable prints a scalar metric table, one row per destination in ascending order.
// An empty table prints only the header.
func WriteTable(w io.Writer, title string, t state.Table) {
	fmt.Fprintf(w, "--- %s ---\n", title)
	rows := make([][]string, 0, len(t))
	for _, dest := range t.Destinations() {
		r := t[dest]
		rows = append(rows, []string{string(dest), string(r.Nh), strconv.FormatUint(uint64(r.Metric), 10)})
	}
	table := newPlainTable(w, []string{"DEST", "NEXT HOP", "COST"})
	table.AppendBulk(rows)
	table.Render()
}

func FormatTable(title string, t state.Table) string {
	sb := &strings.Builder{}
	WriteTable(sb, title, t)
	return sb.String()
}

// WritePathTable prints a path-vector table. If svc has no route, an explicit notice is printed instead.
func WritePathTable(w io.Writer, title string, svc state.ServiceId, t state.PathTable) {
	fmt.Fprintf(w, "--- %s ---\n", title)
	if len(t) == 0 {
		fmt.Fprintf(w, "No path to %s\n", svc)
		return
	}
	rows := make([][]string, 0, len(t))
	for _, dest := range t.Destinations() {
		r := t[dest]
		rows = append(rows, []string{string(dest), string(r.Nh), r.Path.String()})
	}
	table := newPlainTable(w, []string{"DEST", "NEXT HOP", "PATH"})
	table.AppendBulk(rows)
	table.Render()
}

func FormatPathTable(title string, svc state.ServiceId, t state.PathTable) string {
	sb := &strings.Builder{}
	WritePathTable(sb, title, svc, t)
	return sb.String()
}
