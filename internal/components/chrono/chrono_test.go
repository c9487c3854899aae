package chrono

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"sheetfetch/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestStandardImplLocation(t *testing.T) {
	clock, err := NewStandardImpl("America/New_York")
	require.NoError(t, err)
	require.Equal(t, "America/New_York", clock.Location().String())
	require.Equal(t, "America/New_York", clock.Now().Location().String())

	local, err := NewStandardImpl("")
	require.NoError(t, err)
	require.Equal(t, time.Local, local.Location())

	_, err = NewStandardImpl("Nowhere/Atlantis")
	require.Error(t, err)
}

func TestFixedImpl(t *testing.T) {
	at := time.Date(2024, 7, 17, 9, 30, 0, 0, time.UTC)
	clock := FixedImpl{At: at}
	require.Equal(t, at, clock.Now())
	require.Equal(t, time.UTC, clock.Location())
}

func TestStandardCron(t *testing.T) {
	rec := &telemetry.Recorder{}
	cronner := NewStandardCron(rec, time.UTC)

	ran := make(chan struct{}, 1)
	require.NoError(t, cronner.Cron("@every 1s", func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	}))
	require.Error(t, cronner.Cron("not a schedule", func() {}))

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
	<-cronner.Stop().Done()
}

func TestCronLogger(t *testing.T) {
	rec := &telemetry.Recorder{}
	logger := cronLogger{tel: rec}

	logger.Info("schedule", "entry", 1, "dangling")
	logger.Error(errors.New("boom"), "run", "entry", 2)

	debug := rec.Reports("debug")
	require.Len(t, debug, 1)
	require.Equal(t, "cron: schedule", debug[0].Id)
	require.Equal(t, []any{"entry: 1"}, debug[0].Params)

	broken := rec.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "cron", broken[0].Id)
	require.EqualError(t, broken[0].Params[0].(error), "run: boom")
	require.Equal(t, "entry: 2", broken[0].Params[1])
}
