package commands

import (
	"fmt"

	"sheetfetch/internal/formulas"
	"sheetfetch/internal/table"

	"github.com/spf13/cobra"
)

var ratioDecimals int

var jsonifyFlags struct {
	input string
	file  string
}

var trackFlags struct {
	label     string
	value     string
	arrayName string
}

func init() {
	ratioCmd.Flags().IntVar(&ratioDecimals, "decimals", 2, "The amount of decimal places to round to.")
	jsonifyColCmd.Flags().StringVarP(&jsonifyFlags.input, "input", "i", "csv", "The input format, csv or json.")
	jsonifyColCmd.Flags().StringVarP(&jsonifyFlags.file, "file", "f", "-", "The file holding the range, - for stdin.")
	trackEventCmd.Flags().StringVar(&trackFlags.label, "label", "", "The event label.")
	trackEventCmd.Flags().StringVar(&trackFlags.value, "value", "", "The event value, an integer.")
	trackEventCmd.Flags().StringVar(&trackFlags.arrayName, "array", "_gaq", "The name of the analytics queue.")
	rootCmd.AddCommand(ratioCmd, percentDiffCmd, jsonifyColCmd, trackEventCmd)
}

func parseNumber(raw string) (float64, error) {
	n, ok := table.Parse(raw).Float()
	if !ok {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return n, nil
}

func parseNumbers(first, second string) (float64, float64, error) {
	a, err := parseNumber(first)
	if err != nil {
		return 0, 0, err
	}
	b, err := parseNumber(second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

var ratioCmd = &cobra.Command{
	Use:   "ratio <numerator> <denominator>",
	Short: "Shows numerator / denominator as a rounded percentage.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		outputValue(cmd, func() (table.Cell, error) {
			numerator, denominator, err := parseNumbers(args[0], args[1])
			if err != nil {
				return table.Empty(), err
			}
			ratio, err := formulas.RatioUp(numerator, denominator, ratioDecimals)
			return table.Number(ratio), err
		})
	},
}

var percentDiffCmd = &cobra.Command{
	Use:   "percent-diff <old> <new>",
	Short: "Shows the relative change between two numbers.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		outputValue(cmd, func() (table.Cell, error) {
			oldNumber, newNumber, err := parseNumbers(args[0], args[1])
			if err != nil {
				return table.Empty(), err
			}
			diff, err := formulas.PercentDiff(oldNumber, newNumber)
			return table.Number(diff), err
		})
	},
}

var jsonifyColCmd = &cobra.Command{
	Use:   "jsonify-col",
	Short: "Renders the first column of a range as a json array.",
	Run: func(cmd *cobra.Command, args []string) {
		outputValue(cmd, func() (table.Cell, error) {
			rows, err := readRange(jsonifyFlags.file, jsonifyFlags.input)
			if err != nil {
				return table.Empty(), err
			}
			encoded, err := formulas.JsonifyCol(rows)
			return table.String(encoded), err
		})
	},
}

var trackEventCmd = &cobra.Command{
	Use:   "track-event <category> <action>",
	Short: "Generates the analytics event tracking code.",
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var category, action string
		if len(args) > 0 {
			category = args[0]
		}
		if len(args) > 1 {
			action = args[1]
		}
		code := formulas.TrackEvent(invocationFrom(cmd.Context()).errs, category, action, trackFlags.label, trackFlags.value, trackFlags.arrayName)
		outputRows(cmd, table.Message(code))
	},
}
