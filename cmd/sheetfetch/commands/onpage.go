package commands

import (
	"sheetfetch/internal/onpage"
	"sheetfetch/internal/table"

	"github.com/spf13/cobra"
)

func init() {
	onpageCmd.AddCommand(contentCmd, bodyTextCmd, wordCountCmd, titleCmd, linksCmd)
	rootCmd.AddCommand(onpageCmd)
}

func newAnalyzer(cmd *cobra.Command) onpage.Analyzer {
	inv := invocationFrom(cmd.Context())
	return onpage.NewAnalyzer(inv.newSession(), inv.errs)
}

var onpageCmd = &cobra.Command{
	Use:   "onpage",
	Short: "On-page analysis of a url.",
}

var contentCmd = &cobra.Command{
	Use:   "content <url>",
	Short: "Shows the whole html of a page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputValue(cmd, func() (table.Cell, error) {
			content, err := newAnalyzer(cmd).Content(cmd.Context(), args[0])
			return table.String(content), err
		})
	},
}

var bodyTextCmd = &cobra.Command{
	Use:   "text <url>",
	Short: "Shows the text inside the body tag of a page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputValue(cmd, func() (table.Cell, error) {
			text, err := newAnalyzer(cmd).BodyText(cmd.Context(), args[0])
			return table.String(text), err
		})
	},
}

var wordCountCmd = &cobra.Command{
	Use:   "words <url>",
	Short: "Counts the words inside the body tag of a page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputValue(cmd, func() (table.Cell, error) {
			count, err := newAnalyzer(cmd).BodyWordCount(cmd.Context(), args[0])
			return table.Number(float64(count)), err
		})
	},
}

var titleCmd = &cobra.Command{
	Use:   "title <url>",
	Short: "Shows the title of a page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputValue(cmd, func() (table.Cell, error) {
			title, err := newAnalyzer(cmd).Title(cmd.Context(), args[0])
			return table.String(title), err
		})
	},
}

var linksCmd = &cobra.Command{
	Use:   "links <url>",
	Short: "Lists the anchors of a page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inv := invocationFrom(cmd.Context())
		output(cmd, inv.guard(func() (table.Table, error) {
			anchors, err := newAnalyzer(cmd).Links(cmd.Context(), args[0])
			if err != nil {
				return nil, err
			}
			out := table.Table{table.Strings("name", "href")}
			for _, a := range anchors {
				out = append(out, table.Strings(a.Name, a.Href))
			}
			return out, nil
		}))
	},
}
