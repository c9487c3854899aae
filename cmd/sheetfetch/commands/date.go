package commands

import (
	"fmt"
	"time"

	"sheetfetch/internal/formulas"
	"sheetfetch/internal/table"

	"github.com/spf13/cobra"
)

func init() {
	dateCmd.AddCommand(mondayCmd, ymdCmd, futureCmd)
	rootCmd.AddCommand(dateCmd)
}

// parseDate reads raw as a wall clock time in loc.
func parseDate(loc *time.Location, raw string) (time.Time, error) {
	t, ok := table.Parse(raw).Time()
	if !ok {
		return time.Time{}, fmt.Errorf("%q is not a date", raw)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}

var dateCmd = &cobra.Command{
	Use:   "date",
	Short: "Date helpers, dates are YYYY-MM-DD, MM/DD/YYYY or RFC3339.",
}

var mondayCmd = &cobra.Command{
	Use:   "monday <date>",
	Short: "Shows the monday of the week a date falls in.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loc := invocationFrom(cmd.Context()).clock.Location()
		outputValue(cmd, func() (table.Cell, error) {
			t, err := parseDate(loc, args[0])
			if err != nil {
				return table.Empty(), err
			}
			return table.Date(formulas.GetMonday(t)), nil
		})
	},
}

var ymdCmd = &cobra.Command{
	Use:   "ymd <date>",
	Short: "Formats a date as YYYY-MM-DD.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loc := invocationFrom(cmd.Context()).clock.Location()
		outputValue(cmd, func() (table.Cell, error) {
			t, err := parseDate(loc, args[0])
			if err != nil {
				return table.Empty(), err
			}
			return table.String(formulas.DateToYMD(t)), nil
		})
	},
}

var futureCmd = &cobra.Command{
	Use:   "future <date>",
	Short: "Shows whether a date has not happened yet.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		clock := invocationFrom(cmd.Context()).clock
		outputValue(cmd, func() (table.Cell, error) {
			t, err := parseDate(clock.Location(), args[0])
			if err != nil {
				return table.Empty(), err
			}
			return table.FromAny(formulas.IsInFuture(clock, t)), nil
		})
	},
}
