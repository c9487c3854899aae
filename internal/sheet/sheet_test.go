package sheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"sheetfetch/internal/table"

	"github.com/stretchr/testify/require"
)

func TestReadTableCsv(t *testing.T) {
	input := "city,population\nphilly,1500000\nhouston\n"
	result, err := ReadTable(strings.NewReader(input), InputCsv)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"city", "population"},
		{"philly", "1500000"},
		{"houston"},
	}, result.Texts())
	require.Equal(t, table.KindNumber, result[1][1].Kind())
}

func TestReadTableJsonRows(t *testing.T) {
	input := `[["city", "population"], ["philly", 1500000], "houston"]`
	result, err := ReadTable(strings.NewReader(input), InputJson)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"city", "population"},
		{"philly", "1500000"},
		{"houston"},
	}, result.Texts())
}

func TestReadTableJsonRecords(t *testing.T) {
	input := `[{"city": "philly", "rank": 1}, {"city": "houston", "state": "tx"}]`
	result, err := ReadTable(strings.NewReader(input), InputJson)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"city", "rank", "state"},
		{"philly", "1", ""},
		{"houston", "", "tx"},
	}, result.Texts())

	records, err := ReadRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "tx", records[1]["state"].Text())
}

func TestReadTableUnknownFormat(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""), "xlsx")
	require.Error(t, err)
}

func TestWrite(t *testing.T) {
	data := table.FromStrings([][]string{
		{"city", "population"},
		{"philly", "1500000"},
	})

	for _, format := range OutputFormats {
		var out bytes.Buffer
		require.NoError(t, Write(&out, data, format), format)
		require.Contains(t, out.String(), "philly", format)
		require.Contains(t, out.String(), "population", format)
	}

	var out bytes.Buffer
	require.NoError(t, Write(&out, data, OutputJson))
	require.Equal(t, `[["city","population"],["philly",1500000]]`+"\n", out.String())

	out.Reset()
	require.NoError(t, Write(&out, data, OutputCsv))
	require.Equal(t, "city,population\nphilly,1500000\n", out.String())

	require.Error(t, Write(&out, data, "xlsx"))
}

func TestErrorTable(t *testing.T) {
	result := ErrorTable(errors.New("(404) not found"))
	require.Equal(t, [][]string{{"(404) not found"}}, result.Texts())
}
