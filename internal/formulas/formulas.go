// Package formulas holds the helpers exposed to spreadsheet users that do not talk to any
// third party: date math, ratios, url clean up and tracking code generation.
package formulas

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"sheetfetch/internal/components/chrono"
	"sheetfetch/internal/errlog"
	"sheetfetch/internal/table"
	"sheetfetch/internal/textutil"
	"sheetfetch/internal/urlutil"
)

var ErrDivideByZero = errors.New("cannot divide by zero")

// Guard returns the accumulated problems as a message instead of calling fn once something went
// wrong, an error returned by fn becomes a message as well.
func Guard(errs *errlog.Accumulator, fn func() (table.Table, error)) table.Table {
	msg, occurred := errs.Get()
	if occurred {
		return table.Message(msg)
	}
	result, err := fn()
	if err != nil {
		return table.Message(err.Error())
	}
	return result
}

// GetMonday returns the monday of the week t falls in, weeks start on monday. The time of day is
// kept.
func GetMonday(t time.Time) time.Time {
	weekday := int(t.Weekday())
	diff := 1 - weekday
	if t.Weekday() == time.Sunday {
		diff = -6
	}
	return t.AddDate(0, 0, diff)
}

func DateToYMD(t time.Time) string {
	return t.Format(table.DateLayout)
}

// IsInFuture reports whether t is not before the current time of clock.
func IsInFuture(clock chrono.API, t time.Time) bool {
	return !clock.Now().After(t)
}

// roundHalfUp rounds like spreadsheets do, halves always go up.
func roundHalfUp(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Floor(x*pow+0.5) / pow
}

// RatioUp returns numerator / denominator as a percentage rounded to decimals places, 2 when
// decimals is not positive.
func RatioUp(numerator, denominator float64, decimals int) (float64, error) {
	if denominator == 0 {
		return 0, ErrDivideByZero
	}
	if decimals <= 0 {
		decimals = 2
	}
	return roundHalfUp(numerator/denominator*100, decimals), nil
}

// PercentDiff is the relative change from oldNumber to newNumber, 0.5 means 50% up.
func PercentDiff(oldNumber, newNumber float64) (float64, error) {
	if oldNumber == 0 {
		return 0, ErrDivideByZero
	}
	return newNumber/oldNumber - 1, nil
}

// JsonifyCol renders the first cell of every row as a json array.
func JsonifyCol(t table.Table) (string, error) {
	cells := make([]table.Cell, len(t))
	for i, row := range t {
		cells[i] = row.At(0)
	}
	encoded, err := json.Marshal(cells)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func StripUrlScheme(urls []string) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = urlutil.StripScheme(u)
	}
	return out
}

// GetDomainName returns the domain of every url as a column, urls without one give an empty cell.
func GetDomainName(urls []string) table.Table {
	out := make(table.Table, len(urls))
	for i, u := range urls {
		domain, ok := urlutil.DomainName(u)
		if !ok {
			out[i] = table.Row{table.Empty()}
			continue
		}
		out[i] = table.Row{table.String(domain)}
	}
	return out
}

// ParseUrl returns the pieces of u as a header row of piece names followed by their values.
func ParseUrl(u string) (table.Table, error) {
	parts, ok := urlutil.Parse(u)
	if !ok {
		return nil, fmt.Errorf("could not parse url %q", u)
	}
	return table.Table{
		table.Strings(urlutil.PartNames...),
		table.Strings(parts.Values()...),
	}, nil
}

func RangeToUrlString(values []string) string {
	return urlutil.RangeToURLString(values)
}

// TrackEvent generates the analytics push call tracking an event. label and value are optional,
// a value that is not an integer is left out. Missing required fields are recorded in errs and
// returned.
func TrackEvent(errs *errlog.Accumulator, category, action, label, value, arrayName string) string {
	if arrayName == "" {
		arrayName = "_gaq"
	}
	if category == "" {
		errs.Set("Category is required.")
	}
	if action == "" {
		errs.Set("Action is required.")
	}
	msg, occurred := errs.Get()
	if occurred {
		return msg
	}

	pieces := []string{
		textutil.InQuotes("_trackEvent"),
		textutil.InQuotes(category),
		textutil.InQuotes(action),
	}
	if label != "" {
		pieces = append(pieces, textutil.InQuotes(label))
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err == nil {
		pieces = append(pieces, strconv.Itoa(n))
	}
	return fmt.Sprintf("%s.push([%s]);", arrayName, strings.Join(pieces, ","))
}
