package table

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	}
	return "empty"
}

// Cell is a single spreadsheet value: a string, a number, a date or nothing at all. Empty cells
// stand for values that could not be found (unknown columns, short rows).
type Cell struct {
	kind Kind
	str  string
	num  float64
	date time.Time
}

func Empty() Cell {
	return Cell{}
}

func String(s string) Cell {
	return Cell{kind: KindString, str: s}
}

func Number(f float64) Cell {
	return Cell{kind: KindNumber, num: f}
}

func Date(t time.Time) Cell {
	return Cell{kind: KindDate, date: t}
}

func (c Cell) Kind() Kind {
	return c.kind
}

func (c Cell) IsEmpty() bool {
	return c.kind == KindEmpty
}

// DateLayout is the layout dates are rendered as text with.
const DateLayout = "2006-01-02"

// Text renders the cell the way a spreadsheet would display it.
func (c Cell) Text() string {
	switch c.kind {
	case KindString:
		return c.str
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindDate:
		return c.date.Format(DateLayout)
	}
	return ""
}

func (c Cell) String() string {
	return c.Text()
}

// Float converts the cell to a number. Strings are converted only when they are entirely numeric,
// dates convert to their unix time in seconds.
func (c Cell) Float() (float64, bool) {
	switch c.kind {
	case KindNumber:
		return c.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case KindDate:
		return float64(c.date.Unix()), true
	}
	return 0, false
}

var dateLayouts = []string{
	time.RFC3339,
	DateLayout,
	"01/02/2006",
	"1/2/2006",
}

// Time converts the cell to a date. Strings are parsed with RFC3339, YYYY-MM-DD and MM/DD/YYYY.
func (c Cell) Time() (time.Time, bool) {
	switch c.kind {
	case KindDate:
		return c.date, true
	case KindString:
		for _, layout := range dateLayouts {
			t, err := time.Parse(layout, strings.TrimSpace(c.str))
			if err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// Parse turns raw text into a cell: empty text is Empty, entirely numeric text is a Number and
// everything else stays a String.
func Parse(raw string) Cell {
	if raw == "" {
		return Empty()
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return Number(f)
	}
	return String(raw)
}

// FromAny converts decoded json (or any scalar) into a cell. Values that are not scalars are
// rendered with fmt.
func FromAny(v any) Cell {
	switch v := v.(type) {
	case nil:
		return Empty()
	case Cell:
		return v
	case string:
		return String(v)
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return String(v.String())
		}
		return Number(f)
	case bool:
		return String(strconv.FormatBool(v))
	case time.Time:
		return Date(v)
	}
	return String(fmt.Sprint(v))
}

func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindString:
		return json.Marshal(c.str)
	case KindNumber:
		return json.Marshal(c.num)
	case KindDate:
		return json.Marshal(c.date.Format(time.RFC3339))
	}
	return []byte("null"), nil
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var v any
	err := json.Unmarshal(data, &v)
	if err != nil {
		return err
	}
	*c = FromAny(v)
	return nil
}
