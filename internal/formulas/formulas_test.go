package formulas

import (
	"errors"
	"testing"
	"time"

	"sheetfetch/internal/components/chrono"
	"sheetfetch/internal/errlog"
	"sheetfetch/internal/table"

	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 9, 30, 0, 0, time.UTC)
}

func TestGetMonday(t *testing.T) {
	cases := []struct {
		input    time.Time
		expected time.Time
	}{
		{input: date(2024, time.July, 17), expected: date(2024, time.July, 15)},
		{input: date(2024, time.July, 15), expected: date(2024, time.July, 15)},
		{input: date(2024, time.July, 21), expected: date(2024, time.July, 15)},
		{input: date(2024, time.August, 1), expected: date(2024, time.July, 29)},
	}
	for _, row := range cases {
		require.Equal(t, row.expected, GetMonday(row.input), row.input.String())
	}
}

func TestDateToYMD(t *testing.T) {
	require.Equal(t, "2024-03-05", DateToYMD(date(2024, time.March, 5)))
}

func TestIsInFuture(t *testing.T) {
	clock := chrono.FixedImpl{At: date(2024, time.July, 17)}
	require.True(t, IsInFuture(clock, date(2024, time.July, 18)))
	require.True(t, IsInFuture(clock, clock.At))
	require.False(t, IsInFuture(clock, date(2024, time.July, 16)))
}

func TestRatioUp(t *testing.T) {
	ratio, err := RatioUp(1, 3, 0)
	require.NoError(t, err)
	require.Equal(t, 33.33, ratio)

	ratio, err = RatioUp(1, 8, 1)
	require.NoError(t, err)
	require.Equal(t, 12.5, ratio)

	ratio, err = RatioUp(2, 3, 3)
	require.NoError(t, err)
	require.Equal(t, 66.667, ratio)

	_, err = RatioUp(1, 0, 2)
	require.ErrorIs(t, err, ErrDivideByZero)
}

func TestPercentDiff(t *testing.T) {
	diff, err := PercentDiff(100, 150)
	require.NoError(t, err)
	require.Equal(t, 0.5, diff)

	_, err = PercentDiff(0, 1)
	require.ErrorIs(t, err, ErrDivideByZero)
}

func TestJsonifyCol(t *testing.T) {
	encoded, err := JsonifyCol(table.FromStrings([][]string{{"a", "x"}, {"1"}, {}}))
	require.NoError(t, err)
	require.Equal(t, `["a",1,null]`, encoded)
}

func TestUrlHelpers(t *testing.T) {
	require.Equal(t, []string{"www.a.com/x", "b.com"}, StripUrlScheme([]string{"http://www.a.com/x", "https://b.com"}))

	domains := GetDomainName([]string{"http://www.seerinteractive.com/blog", "localhost"})
	require.Len(t, domains, 2)
	require.Equal(t, "seerinteractive.com", domains[0][0].Text())
	require.True(t, domains[1][0].IsEmpty())

	parsed, err := ParseUrl("http://a.com/p?q#h")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"url", "scheme", "slash", "host", "port", "path", "query", "hash"},
		{"http://a.com/p?q#h", "http", "//", "a.com", "", "p", "q", "h"},
	}, parsed.Texts())

	_, err = ParseUrl("no url here")
	require.Error(t, err)

	require.Equal(t, "a%20b,c%2Fd", RangeToUrlString([]string{"a b", "c/d"}))
}

func TestTrackEvent(t *testing.T) {
	errs := errlog.New()
	require.Equal(t,
		"_gaq.push(['_trackEvent','Outbound','click','http://x',5]);",
		TrackEvent(errs, "Outbound", "click", "http://x", "5", ""),
	)
	require.Equal(t,
		"_gaq2.push(['_trackEvent','Video','play']);",
		TrackEvent(errs, "Video", "play", "", "not a number", "_gaq2"),
	)
	require.False(t, errs.HasOccurred())

	require.Equal(t, "Category is required., Action is required.", TrackEvent(errs, "", "", "", "", ""))
}

func TestGuard(t *testing.T) {
	errs := errlog.New()
	calls := 0
	fn := func() (table.Table, error) {
		calls++
		return table.Table{table.Strings("ok")}, nil
	}

	require.Equal(t, "ok", Guard(errs, fn)[0][0].Text())
	require.Equal(t, 1, calls)

	failing := Guard(errs, func() (table.Table, error) {
		return nil, errors.New("(500) upstream")
	})
	require.Equal(t, table.Message("(500) upstream"), failing)

	errs.Set("Could not find the setting \"key\"")
	require.Equal(t, table.Message("Could not find the setting \"key\""), Guard(errs, fn))
	require.Equal(t, 1, calls)
}
