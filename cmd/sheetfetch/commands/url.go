package commands

import (
	"sheetfetch/internal/formulas"
	"sheetfetch/internal/table"
	"sheetfetch/internal/textutil"
	"sheetfetch/internal/urlutil"

	"github.com/spf13/cobra"
)

var rawParams bool

func init() {
	urlParamsCmd.Flags().BoolVar(&rawParams, "raw", false, "Do not encode keys and values.")
	urlCmd.AddCommand(urlParseCmd, urlDomainCmd, urlStripCmd, urlEncodeCmd, urlGaCmd, urlParamsCmd)
	rootCmd.AddCommand(urlCmd)
}

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Url helpers.",
}

var urlParseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Splits a url into scheme, host, port, path, query and hash.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output(cmd, invocationFrom(cmd.Context()).guard(func() (table.Table, error) {
			return formulas.ParseUrl(args[0])
		}))
	},
}

var urlDomainCmd = &cobra.Command{
	Use:   "domain <url>...",
	Short: "Shows the bare domain of every url.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputRows(cmd, formulas.GetDomainName(args))
	},
}

var urlStripCmd = &cobra.Command{
	Use:   "strip <url>...",
	Short: "Removes the http(s) scheme of every url.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputRows(cmd, table.AsColumn(table.Strings(formulas.StripUrlScheme(args)...)))
	},
}

var urlEncodeCmd = &cobra.Command{
	Use:   "encode <value>...",
	Short: "Encodes every value and joins them with commas.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputRows(cmd, table.Message(formulas.RangeToUrlString(args)))
	},
}

var urlGaCmd = &cobra.Command{
	Use:   "ga <expression>",
	Short: "Encodes an analytics filter or segment expression.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputRows(cmd, table.Message(textutil.EncodeGa(args[0])))
	},
}

var urlParamsCmd = &cobra.Command{
	Use:   "params <key=value>...",
	Short: "Builds a query string.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputRows(cmd, invocationFrom(cmd.Context()).guard(func() (table.Table, error) {
			params, err := parsePairs(args, "=")
			if err != nil {
				return nil, err
			}
			if rawParams {
				return table.Message(urlutil.HashToParam(params)), nil
			}
			return table.Message(params.Encode()), nil
		}))
	},
}
