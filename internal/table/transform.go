package table

import "strconv"

// Column selects a column either by its header name or by its position.
type Column struct {
	name    string
	index   int
	byIndex bool
}

func Name(name string) Column {
	return Column{name: name}
}

func Index(i int) Column {
	return Column{index: i, byIndex: true}
}

func (c Column) String() string {
	if c.byIndex {
		return strconv.Itoa(c.index)
	}
	return c.name
}

func (c Column) header() Cell {
	if c.byIndex {
		return Number(float64(c.index))
	}
	return String(c.name)
}

// ColumnSpec is the ordered list of columns a projection keeps.
type ColumnSpec []Column

func Names(names ...string) ColumnSpec {
	spec := make(ColumnSpec, len(names))
	for i, n := range names {
		spec[i] = Name(n)
	}
	return spec
}

// SpecFromCells reads a column spec out of cells, typically a range of header names. Number
// cells select by position, everything else by name.
func SpecFromCells(cells []Cell) ColumnSpec {
	spec := make(ColumnSpec, 0, len(cells))
	for _, c := range cells {
		if c.Kind() == KindNumber {
			f, _ := c.Float()
			spec = append(spec, Index(int(f)))
			continue
		}
		spec = append(spec, Name(c.Text()))
	}
	return spec
}

// FilterColumns projects t, whose first row holds the headers, onto the columns of spec in the
// order of spec. When spec names exactly one column the header row is dropped and a bare list of
// values is returned.
func FilterColumns(t Table, spec ColumnSpec) Table {
	if len(t) == 0 {
		return Table{}
	}

	header := t.Header()
	indices := make([]int, len(spec))
	for i, col := range spec {
		if col.byIndex {
			indices[i] = col.index
			continue
		}
		indices[i] = header.IndexOf(col.name)
	}

	out := make(Table, len(t))
	for r, row := range t {
		projected := make(Row, len(indices))
		for i, idx := range indices {
			projected[i] = row.At(idx)
		}
		out[r] = projected
	}

	if len(spec) == 1 {
		return RemoveFirstRow(out)
	}
	return out
}

// FilterRecords projects name addressed records onto spec. The result starts with a header row
// made of spec itself, which is dropped when spec names exactly one column. Columns selected by
// position have no meaning for records and come out Empty.
func FilterRecords(records []Record, spec ColumnSpec) Table {
	header := make(Row, len(spec))
	for i, col := range spec {
		header[i] = col.header()
	}

	out := make(Table, 0, len(records)+1)
	out = append(out, header)
	for _, rec := range records {
		row := make(Row, len(spec))
		for i, col := range spec {
			if col.byIndex {
				row[i] = Empty()
				continue
			}
			row[i] = rec[col.name]
		}
		out = append(out, row)
	}

	if len(spec) == 1 {
		return RemoveFirstRow(out)
	}
	return out
}

// RemoveFirstRow drops the header row. The remainder shares its rows with t.
func RemoveFirstRow(t Table) Table {
	if len(t) == 0 {
		return t
	}
	return t[1:]
}

// CombineRange flattens a rectangular block into a single sequence. The block is read column by
// column (top to bottom, then left to right) unless byRows is set, in which case it is read row by
// row (left to right, then top to bottom). The first row defines the block's width. The sequence
// comes out as a single column unless asRow is set.
func CombineRange(block Table, byRows, asRow bool) Table {
	if len(block) == 0 {
		return Table{}
	}

	width := len(block[0])
	cells := make([]Cell, 0, width*len(block))
	if byRows {
		for r := 0; r < len(block); r++ {
			for c := 0; c < width; c++ {
				cells = append(cells, block.At(r, c))
			}
		}
	} else {
		for c := 0; c < width; c++ {
			for r := 0; r < len(block); r++ {
				cells = append(cells, block.At(r, c))
			}
		}
	}

	if asRow {
		return Table{Row(cells)}
	}
	return AsColumn(cells)
}
