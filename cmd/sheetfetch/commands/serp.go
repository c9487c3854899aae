package commands

import (
	"sheetfetch/internal/serp"
	"sheetfetch/internal/table"

	"github.com/spf13/cobra"
)

var serpFlags struct {
	opts    serp.Options
	details bool
}

func init() {
	flags := serpCmd.Flags()
	flags.IntVar(&serpFlags.opts.Results, "results", 10, "The amount of results to request.")
	flags.StringVar(&serpFlags.opts.Tld, "tld", ".com", "The google domain to search on.")
	flags.IntVar(&serpFlags.opts.Start, "start", 0, "The offset of the first result.")
	flags.BoolVar(&serpFlags.details, "details", false, "Show title, description and cite of every result.")
	rootCmd.AddCommand(serpCmd)
}

var serpCmd = &cobra.Command{
	Use:   "serp <keyword>",
	Short: "Lists the organic google results of a keyword.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inv := invocationFrom(cmd.Context())
		scraper := serp.NewScraper(inv.newSession(), inv.tel)
		if !serpFlags.details {
			outputRows(cmd, inv.guard(func() (table.Table, error) {
				return scraper.SearchTable(cmd.Context(), args[0], serpFlags.opts)
			}))
			return
		}
		output(cmd, inv.guard(func() (table.Table, error) {
			results, err := scraper.Results(cmd.Context(), args[0], serpFlags.opts)
			if err != nil {
				return nil, err
			}
			out := table.Table{serp.ResultHeader}
			for _, r := range results {
				out = append(out, r.Row())
			}
			return out, nil
		}))
	},
}
