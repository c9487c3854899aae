package commands

import (
	"sheetfetch/internal/components/chrono"
	"sheetfetch/internal/serviceutil"
	"sheetfetch/internal/table"

	"github.com/spf13/cobra"
)

const report_watch = "watch"

var watchSchedule string

func init() {
	registerFetchFlags(watchCmd.Flags())
	watchCmd.Flags().StringVar(&watchSchedule, "every", "@hourly", "A cron expression or descriptor like @every 15m.")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <url>",
	Short: "Fetches a url on a schedule and shows the table every time, until interrupted.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		inv := invocationFrom(ctx)
		cronner := chrono.NewStandardCron(inv.tel, inv.clock.Location())

		runs := make(chan struct{}, 1)
		err := cronner.Cron(watchSchedule, func() {
			select {
			case runs <- struct{}{}:
			default:
				inv.tel.ReportWarning(report_watch, "previous fetch still running, skipping", args[0])
			}
		})
		if err != nil {
			serviceutil.Fatal("invalid schedule", err)
		}

		for {
			select {
			case <-ctx.Done():
				<-cronner.Stop().Done()
				return
			case <-runs:
				inv.errs.Reset()
				output(cmd, inv.guard(func() (table.Table, error) {
					return fetchTable(ctx, args[0])
				}))
				inv.tel.ReportDebug(report_watch, "fetched", args[0], inv.clock.Now())
			}
		}
	},
}
