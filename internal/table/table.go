// Package table reshapes tabular values: ordered rows of ordered cells whose first row
// conventionally holds the column headers.
//
// None of the functions here validate their input. Jagged rows and unknown columns produce
// Empty cells instead of errors, a batch is never interrupted half way.
package table

type Row []Cell

// Table is a slice of rows, the first row is the header row by convention.
type Table []Row

// Record is a row of a "hash table" shaped payload, cells are addressed by column name.
type Record map[string]Cell

// Strings builds a row of string cells.
func Strings(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = String(v)
	}
	return row
}

// FromStrings builds a table by parsing every value with Parse.
func FromStrings(rows [][]string) Table {
	out := make(Table, len(rows))
	for r, row := range rows {
		out[r] = make(Row, len(row))
		for c, v := range row {
			out[r][c] = Parse(v)
		}
	}
	return out
}

// At returns the cell at (r, c), Empty when it is out of range.
func (t Table) At(r, c int) Cell {
	if r < 0 || r >= len(t) {
		return Empty()
	}
	return t[r].At(c)
}

// At returns the cell at index i, Empty when it is out of range.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Empty()
	}
	return r[i]
}

// Header returns the first row, nil for an empty table.
func (t Table) Header() Row {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Width is the column count defined by the header row.
func (t Table) Width() int {
	return len(t.Header())
}

// Texts renders every cell with Cell.Text.
func (t Table) Texts() [][]string {
	out := make([][]string, len(t))
	for r, row := range t {
		out[r] = make([]string, len(row))
		for c, cell := range row {
			out[r][c] = cell.Text()
		}
	}
	return out
}

// IndexOf returns the index of the first cell whose text equals name, -1 if there is none.
func (r Row) IndexOf(name string) int {
	for i, cell := range r {
		if cell.Text() == name {
			return i
		}
	}
	return -1
}

// Flatten reads every cell row by row into a single slice.
func Flatten(t Table) []Cell {
	var out []Cell
	for _, row := range t {
		out = append(out, row...)
	}
	return out
}

// AsColumn returns every cell as its own one-cell row.
func AsColumn(cells []Cell) Table {
	out := make(Table, len(cells))
	for i, c := range cells {
		out[i] = Row{c}
	}
	return out
}

// Message is a one cell table holding text, the shape a failure takes in place of data.
func Message(text string) Table {
	return Table{Row{String(text)}}
}
