package redirection

import (
	"fmt"

	"sheetfetch/internal/table"
	"sheetfetch/internal/urlutil"
)

// HtaccessRedirect builds the .htaccess line that permanently redirects the path of oldUrl to
// newUrl. A url without a path redirects "/".
func HtaccessRedirect(oldUrl, newUrl string) (string, error) {
	parts, ok := urlutil.Parse(oldUrl)
	if !ok {
		return "", fmt.Errorf("could not parse url %q", oldUrl)
	}
	return fmt.Sprintf("Redirect 301 /%s %s", parts.Path, newUrl), nil
}

// HtaccessRedirects turns a two column range of old and new urls into a column of redirect lines.
// Rows that cannot be parsed hold their error text instead.
func HtaccessRedirects(rows table.Table) table.Table {
	out := make(table.Table, 0, len(rows))
	for _, row := range rows {
		line, err := HtaccessRedirect(row.At(0).Text(), row.At(1).Text())
		if err != nil {
			line = err.Error()
		}
		out = append(out, table.Row{table.String(line)})
	}
	return out
}
