package commands

import (
	"context"
	"fmt"
	"strings"

	"sheetfetch/internal/fetch"
	"sheetfetch/internal/sheet"
	"sheetfetch/internal/sliceutil"
	"sheetfetch/internal/table"
	"sheetfetch/internal/urlutil"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var fetchFlags struct {
	as        string
	method    string
	payload   string
	params    []string
	headers   []string
	cookies   []string
	basicAuth string
	noCache   bool
	columns   []string
}

func registerFetchFlags(flags *pflag.FlagSet) {
	flags.StringVar(&fetchFlags.as, "as", string(fetch.FormatJson), "Decode the response as json, xml, html or bodytxt.")
	flags.StringVarP(&fetchFlags.method, "method", "X", fetch.MethodGet, "The request method, get or post.")
	flags.StringVarP(&fetchFlags.payload, "payload", "d", "", "The request body.")
	flags.StringArrayVarP(&fetchFlags.params, "param", "p", nil, "A query parameter as key=value, may be repeated.")
	flags.StringArrayVarP(&fetchFlags.headers, "header", "H", nil, "A request header as 'Name: value', may be repeated.")
	flags.StringArrayVar(&fetchFlags.cookies, "cookie", nil, "A cookie as key=value, may be repeated.")
	flags.StringVar(&fetchFlags.basicAuth, "basic-auth", "", "Credentials as user:pass.")
	flags.BoolVar(&fetchFlags.noCache, "no-cache", false, "Ask intermediaries not to serve a cached response.")
	flags.StringSliceVar(&fetchFlags.columns, "columns", nil, "Only keep these columns of a json table, in this order.")
}

func init() {
	registerFetchFlags(fetchCmd.Flags())
	rootCmd.AddCommand(fetchCmd)
}

func parsePairs(values []string, sep string) (urlutil.Params, error) {
	params := make(urlutil.Params, 0, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, sep)
		if !ok {
			return nil, fmt.Errorf("expected key%svalue, got %q", sep, v)
		}
		params = append(params, urlutil.P(strings.TrimSpace(key), value))
	}
	return params, nil
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Requests a url and shows the decoded response as a table.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inv := invocationFrom(cmd.Context())
		output(cmd, inv.guard(func() (table.Table, error) {
			return fetchTable(cmd.Context(), args[0])
		}))
	},
}

// fetchTable requests rawUrl as described by the fetch flags, ctx carries the invocation.
func fetchTable(ctx context.Context, rawUrl string) (table.Table, error) {
	session := invocationFrom(ctx).newSession()

	params, err := parsePairs(fetchFlags.params, "=")
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		params = nil
	}
	headers, err := parsePairs(fetchFlags.headers, ":")
	if err != nil {
		return nil, err
	}
	for _, h := range headers {
		session.SetHeader(h.Key, strings.TrimSpace(h.Value.(string)))
	}
	cookies, err := parsePairs(fetchFlags.cookies, "=")
	if err != nil {
		return nil, err
	}
	session.SetCookies(cookies)
	if fetchFlags.basicAuth != "" {
		user, pass, _ := strings.Cut(fetchFlags.basicAuth, ":")
		session.SetBasicAuth(user, pass)
	}
	if fetchFlags.noCache {
		session.DisableCache()
	}

	format := fetch.Format(fetchFlags.as)
	session.SetUrl(rawUrl, params)
	session.SetRequestMethod(fetchFlags.method)
	session.SetContentType(format)
	session.SetPayload(fetchFlags.payload)
	if !session.Fetch(ctx) {
		return nil, session.Err()
	}
	value, err := session.ParseResponseAs(format, nil)
	if err != nil {
		return nil, err
	}
	return responseTable(value, table.Names(fetchFlags.columns...)), nil
}

// responseTable lays a decoded response out as a table. Arrays of objects become records, arrays
// of arrays become rows and anything else a single cell.
func responseTable(value any, columns table.ColumnSpec) table.Table {
	switch v := value.(type) {
	case *fetch.XmlElement:
		return xmlTable(v)
	case map[string]any:
		return responseTable([]any{v}, columns)
	case []any:
		if isRecords(v) {
			records := make([]table.Record, len(v))
			for i, item := range v {
				records[i] = toRecord(item.(map[string]any))
			}
			if len(columns) > 0 {
				return table.FilterRecords(records, columns)
			}
			return sheet.RecordsTable(records)
		}
		rows := make(table.Table, len(v))
		for i, item := range v {
			row := table.Row{}
			for _, cell := range sliceutil.Flatten(item) {
				row = append(row, table.FromAny(cell))
			}
			rows[i] = row
		}
		if len(columns) > 0 {
			return table.FilterColumns(rows, columns)
		}
		return rows
	}
	return table.Table{table.Strings("value"), table.Row{table.FromAny(value)}}
}

func isRecords(values []any) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		_, ok := v.(map[string]any)
		if !ok {
			return false
		}
	}
	return true
}

func toRecord(object map[string]any) table.Record {
	record := make(table.Record, len(object))
	for k, v := range object {
		record[k] = table.FromAny(v)
	}
	return record
}

// xmlTable lists every element that holds text by its path from the root.
func xmlTable(root *fetch.XmlElement) table.Table {
	out := table.Table{table.Strings("path", "text")}
	var walk func(el *fetch.XmlElement, path string)
	walk = func(el *fetch.XmlElement, path string) {
		path = path + "/" + el.Name
		if len(el.Children) == 0 || el.Text != "" {
			out = append(out, table.Row{table.String(path), table.Parse(el.Text)})
		}
		for _, child := range el.Children {
			walk(child, path)
		}
	}
	walk(root, "")
	return out
}
