package commands

import (
	"io"
	"os"

	"sheetfetch/internal/sheet"
	"sheetfetch/internal/sliceutil"
	"sheetfetch/internal/table"

	"github.com/spf13/cobra"
)

var tableFlags struct {
	input   string
	file    string
	columns []string
	records bool
	byRows  bool
	asRow   bool
	size    int
}

func init() {
	flags := tableCmd.PersistentFlags()
	flags.StringVarP(&tableFlags.input, "input", "i", string(sheet.InputCsv), "The input format, csv or json.")
	flags.StringVarP(&tableFlags.file, "file", "f", "-", "The file holding the range, - for stdin.")

	filterCmd.Flags().StringSliceVar(&tableFlags.columns, "columns", nil, "The columns to keep, by header name or position.")
	filterCmd.Flags().BoolVar(&tableFlags.records, "records", false, "The input is a json array of objects.")
	combineCmd.Flags().BoolVar(&tableFlags.byRows, "by-rows", false, "Read the range row by row instead of column by column.")
	combineCmd.Flags().BoolVar(&tableFlags.asRow, "as-row", false, "Emit a single row instead of a single column.")
	groupCmd.Flags().IntVar(&tableFlags.size, "size", 2, "The amount of cells in each group.")

	tableCmd.AddCommand(filterCmd, removeFirstRowCmd, combineCmd, groupCmd)
	rootCmd.AddCommand(tableCmd)
}

func openInput(file string) (io.ReadCloser, error) {
	if file == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(file)
}

func readRange(file, format string) (table.Table, error) {
	in, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return sheet.ReadTable(in, sheet.InputFormat(format))
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Reshapes a range read from csv or json.",
}

var filterCmd = &cobra.Command{
	Use:   "filter --columns <a,b,...>",
	Short: "Keeps only the given columns in the given order, a single column loses its header.",
	Run: func(cmd *cobra.Command, args []string) {
		spec := table.SpecFromCells(table.FromStrings([][]string{tableFlags.columns})[0])
		result := invocationFrom(cmd.Context()).guard(func() (table.Table, error) {
			if tableFlags.records {
				in, err := openInput(tableFlags.file)
				if err != nil {
					return nil, err
				}
				defer in.Close()
				records, err := sheet.ReadRecords(in)
				if err != nil {
					return nil, err
				}
				return table.FilterRecords(records, spec), nil
			}
			rows, err := readRange(tableFlags.file, tableFlags.input)
			if err != nil {
				return nil, err
			}
			return table.FilterColumns(rows, spec), nil
		})
		if len(spec) == 1 {
			outputRows(cmd, result)
			return
		}
		output(cmd, result)
	},
}

var removeFirstRowCmd = &cobra.Command{
	Use:   "remove-first-row",
	Short: "Drops the header row of a range.",
	Run: func(cmd *cobra.Command, args []string) {
		outputRows(cmd, invocationFrom(cmd.Context()).guard(func() (table.Table, error) {
			rows, err := readRange(tableFlags.file, tableFlags.input)
			if err != nil {
				return nil, err
			}
			return table.RemoveFirstRow(rows), nil
		}))
	},
}

var combineCmd = &cobra.Command{
	Use:   "combine [--by-rows] [--as-row]",
	Short: "Flattens a range into a single column or row.",
	Run: func(cmd *cobra.Command, args []string) {
		outputRows(cmd, invocationFrom(cmd.Context()).guard(func() (table.Table, error) {
			rows, err := readRange(tableFlags.file, tableFlags.input)
			if err != nil {
				return nil, err
			}
			return table.CombineRange(rows, tableFlags.byRows, tableFlags.asRow), nil
		}))
	},
}

var groupCmd = &cobra.Command{
	Use:   "group --size <n>",
	Short: "Reads a range row by row and splits its cells into rows of n cells.",
	Run: func(cmd *cobra.Command, args []string) {
		outputRows(cmd, invocationFrom(cmd.Context()).guard(func() (table.Table, error) {
			rows, err := readRange(tableFlags.file, tableFlags.input)
			if err != nil {
				return nil, err
			}
			groups := sliceutil.GroupBy(table.Flatten(rows), tableFlags.size)
			out := make(table.Table, len(groups))
			for i, g := range groups {
				out[i] = table.Row(g)
			}
			return out, nil
		}))
	},
}
