package commands

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"basegov/services/contracts"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var viewSort *string
var viewSearch *string

func init() {
	viewSort = viewCmd.Flags().String("sort", "", "Column name to sort rows by.")
	viewSearch = viewCmd.Flags().String("search", "", "Only show rows containing this text.")
	rootCmd.AddCommand(viewCmd)
}

func readReport(path string) ([]string, [][]string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	contents = bytes.TrimPrefix(contents, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(contents))
	reader.Comma = contracts.ReportDelimiter
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: report has no header row", path)
	}
	return rows[0], rows[1:], nil
}

func matchesSearch(row []string, needle string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), needle) {
			return true
		}
	}
	return false
}

var viewCmd = &cobra.Command{
	Use:   "view <path/to/report.csv>",
	Short: "Renders a contract report as a sortable, searchable table.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		header, rows, err := readReport(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)

		headerRow := make(table.Row, len(header))
		for i, name := range header {
			headerRow[i] = name
		}
		t.AppendHeader(headerRow)

		needle := strings.ToLower(*viewSearch)
		shown := 0
		for _, row := range rows {
			if needle != "" && !matchesSearch(row, needle) {
				continue
			}
			tableRow := make(table.Row, len(row))
			for i, cell := range row {
				tableRow[i] = cell
			}
			t.AppendRow(tableRow)
			shown++
		}

		if *viewSort != "" {
			t.SortBy([]table.SortBy{{Name: *viewSort, Mode: table.Asc}})
		}

		t.Render()
		fmt.Printf("%d of %d contracts shown\n", shown, len(rows))
	},
}
