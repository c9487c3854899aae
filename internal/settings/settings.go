package settings

import (
	"context"
	"fmt"
	"strings"

	"sheetfetch/internal/assert"
	"sheetfetch/internal/components/telemetry"
	"sheetfetch/internal/errlog"
	"sheetfetch/internal/table"
	"sheetfetch/internal/textutil"

	"github.com/antzucaro/matchr"
)

const (
	report_settings_get = "settings.get"
)

// suggestionThreshold is the minimum Jaro-Winkler similarity for a setting to be suggested.
const suggestionThreshold = 0.8

// Settings looks up named settings from a Source. Failures are recorded in the accumulator
// instead of being returned, the caller checks it before trusting a value.
type Settings struct {
	source Source
	errs   *errlog.Accumulator
	tel    telemetry.API

	entries []Entry
	loaded  bool
}

func New(source Source, errs *errlog.Accumulator, tel telemetry.API) *Settings {
	assert.NotNil(source)
	assert.NotNil(errs)
	assert.NotNil(tel)

	return &Settings{
		source: source,
		errs:   errs,
		tel:    telemetry.NewScopedAPI("settings", tel),
	}
}

func (s *Settings) load(ctx context.Context) bool {
	if s.loaded {
		return true
	}
	entries, err := s.source.Entries(ctx)
	if err != nil {
		s.errs.Set(err.Error())
		return false
	}
	s.entries = entries
	s.loaded = true
	return true
}

// Get returns the value of the setting whose name matches case-insensitively.
func (s *Settings) Get(ctx context.Context, name string) (string, bool) {
	if s.load(ctx) {
		for _, e := range s.entries {
			if strings.EqualFold(e.Name, name) {
				return e.Value, true
			}
		}
	}

	s.errs.Set(fmt.Sprintf(`Could not find the setting "%s"`, name))
	suggestion, ok := s.Suggest(name)
	if ok {
		s.tel.ReportWarning(report_settings_get, name, fmt.Sprintf("did you mean %q?", suggestion))
	}
	return "", false
}

// Float returns a setting coerced into a number.
func (s *Settings) Float(ctx context.Context, name string) (float64, bool) {
	value, ok := s.Get(ctx, name)
	if !ok {
		return 0, false
	}
	n, ok := table.Parse(value).Float()
	if !ok {
		s.errs.Set(fmt.Sprintf(`The setting "%s" is not a number`, name))
		return 0, false
	}
	return n, true
}

// Suggest returns the loaded setting name closest to name.
func (s *Settings) Suggest(name string) (string, bool) {
	if !s.loaded {
		return "", false
	}

	normalized := textutil.NormalizeName(name)
	best := ""
	bestScore := 0.0
	for _, e := range s.entries {
		score := matchr.JaroWinkler(normalized, textutil.NormalizeName(e.Name), false)
		if score > bestScore {
			best = e.Name
			bestScore = score
		}
	}
	if bestScore < suggestionThreshold {
		return "", false
	}
	return best, true
}

// Names returns the name of every known setting.
func (s *Settings) Names(ctx context.Context) []string {
	if !s.load(ctx) {
		return nil
	}
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}
