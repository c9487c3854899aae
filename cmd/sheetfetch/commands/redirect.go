package commands

import (
	"sheetfetch/internal/fetch"
	"sheetfetch/internal/redirection"
	"sheetfetch/internal/table"

	"github.com/spf13/cobra"
)

var redirectFlags struct {
	input string
	file  string
}

func init() {
	redirectCmd.Flags().StringVarP(&redirectFlags.input, "input", "i", "csv", "The input format of a range, csv or json.")
	redirectCmd.Flags().StringVarP(&redirectFlags.file, "file", "f", "", "A two column range of old and new urls, - for stdin.")
	rootCmd.AddCommand(redirectCmd)
}

var redirectCmd = &cobra.Command{
	Use:   "redirect <old url> <new url> | redirect --file <range>",
	Short: "Creates .htaccess 301 redirects.",
	Run: func(cmd *cobra.Command, args []string) {
		inv := invocationFrom(cmd.Context())
		outputRows(cmd, inv.guard(func() (table.Table, error) {
			if redirectFlags.file != "" {
				rows, err := readRange(redirectFlags.file, redirectFlags.input)
				if err != nil {
					return nil, err
				}
				return redirection.HtaccessRedirects(rows), nil
			}
			if len(args) != 2 {
				return nil, fetch.ErrMissingParameters
			}
			line, err := redirection.HtaccessRedirect(args[0], args[1])
			if err != nil {
				return nil, err
			}
			return table.Message(line), nil
		}))
	},
}
