// Package sheet is the cell surface: it reads ranges into tables and renders tables back out.
package sheet

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"sheetfetch/internal/sliceutil"
	"sheetfetch/internal/table"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type InputFormat string

const (
	InputCsv  InputFormat = "csv"
	InputJson InputFormat = "json"
)

type OutputFormat string

const (
	OutputPretty   OutputFormat = "pretty"
	OutputCsv      OutputFormat = "csv"
	OutputMarkdown OutputFormat = "markdown"
	OutputHtml     OutputFormat = "html"
	OutputJson     OutputFormat = "json"
)

var OutputFormats = []OutputFormat{OutputPretty, OutputCsv, OutputMarkdown, OutputHtml, OutputJson}

// ReadTable reads a range. csv values are parsed with table.Parse, json may either be an array
// of rows or an array of records (see ReadRecords).
func ReadTable(r io.Reader, format InputFormat) (table.Table, error) {
	switch format {
	case InputCsv:
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		return table.FromStrings(rows), nil
	case InputJson:
		var raw []json.RawMessage
		err := json.NewDecoder(r).Decode(&raw)
		if err != nil {
			return nil, fmt.Errorf("read json: %w", err)
		}
		return fromJsonRows(raw)
	}
	return nil, fmt.Errorf("unknown input format %q", format)
}

func fromJsonRows(raw []json.RawMessage) (table.Table, error) {
	if len(raw) > 0 && len(raw[0]) > 0 && raw[0][0] == '{' {
		records, err := decodeRecords(raw)
		if err != nil {
			return nil, err
		}
		return RecordsTable(records), nil
	}

	out := make(table.Table, 0, len(raw))
	for _, message := range raw {
		var values any
		err := json.Unmarshal(message, &values)
		if err != nil {
			return nil, fmt.Errorf("read json: %w", err)
		}
		row := table.Row{}
		for _, v := range sliceutil.Flatten(values) {
			row = append(row, table.FromAny(v))
		}
		out = append(out, row)
	}
	return out, nil
}

func decodeRecords(raw []json.RawMessage) ([]table.Record, error) {
	records := make([]table.Record, 0, len(raw))
	for _, message := range raw {
		var record table.Record
		err := json.Unmarshal(message, &record)
		if err != nil {
			return nil, fmt.Errorf("read json records: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// ReadRecords reads a json array of objects, each object is a record keyed by column name.
func ReadRecords(r io.Reader) ([]table.Record, error) {
	var raw []json.RawMessage
	err := json.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("read json records: %w", err)
	}
	return decodeRecords(raw)
}

// RecordsTable lays records out as a table whose header holds every key in sorted order.
func RecordsTable(records []table.Record) table.Table {
	keys := map[string]struct{}{}
	for _, record := range records {
		for k := range record {
			keys[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	out := table.Table{table.Strings(names...)}
	for _, record := range records {
		row := make(table.Row, len(names))
		for i, name := range names {
			row[i] = record[name]
		}
		out = append(out, row)
	}
	return out
}

// ErrorTable is how a failure is shown in place of data.
func ErrorTable(err error) table.Table {
	return table.Message(err.Error())
}

func toPrettyRow(row table.Row) prettytable.Row {
	out := make(prettytable.Row, len(row))
	for i, cell := range row {
		out[i] = cell.Text()
	}
	return out
}

// Write renders t with its first row as the header.
func Write(w io.Writer, t table.Table, format OutputFormat) error {
	return write(w, t, format, true)
}

// WriteRows renders t without treating any row as the header.
func WriteRows(w io.Writer, t table.Table, format OutputFormat) error {
	return write(w, t, format, false)
}

func write(w io.Writer, t table.Table, format OutputFormat, header bool) error {
	if format == OutputJson {
		encoded, err := json.Marshal(t)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(encoded))
		return err
	}

	writer := prettytable.NewWriter()
	writer.SetStyle(prettytable.StyleRounded)
	writer.Style().Format.Header = text.FormatDefault

	rows := t
	if header && len(t) > 0 {
		writer.AppendHeader(toPrettyRow(t[0]))
		rows = t[1:]
	}
	for _, row := range rows {
		writer.AppendRow(toPrettyRow(row))
	}

	var out string
	switch format {
	case OutputPretty, "":
		out = writer.Render()
	case OutputCsv:
		out = writer.RenderCSV()
	case OutputMarkdown:
		out = writer.RenderMarkdown()
	case OutputHtml:
		out = writer.RenderHTML()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
