package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/gymdesk/internal/watcher"
)

func TestWatchCommand_RejectsShortInterval(t *testing.T) {
	testEnv(t)

	_, err := run(t, "watch", "--interval", "5s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 30s")

	_, err = run(t, "watch", "--interval", "soon")
	assert.ErrorContains(t, err, "invalid interval")
}

func TestWatchSource_BuildsState(t *testing.T) {
	dir := testEnv(t)
	resetFlags(rootCmd)
	flagData = dir
	flagToday = testToday
	t.Cleanup(func() { resetFlags(rootCmd) })

	s, err := newSession(watchCmd)
	require.NoError(t, err)
	defer s.close()

	st, err := s.watchSource()(context.Background())
	require.NoError(t, err)
	assert.Positive(t, st.Members)
	assert.Positive(t, st.Classes)
	assert.Positive(t, st.Trainers)
	assert.Equal(t, testToday, s.now.String())

	// An unchanged directory raises nothing on the next check.
	w := watcher.New(s.watchSource(), time.Minute, nil)
	_, err = w.Prime(context.Background())
	require.NoError(t, err)
	assert.Empty(t, w.Check(context.Background()))
}

func TestPrintAlert(t *testing.T) {
	var buf bytes.Buffer
	printAlert(&buf, watcher.Alert{
		Level:   watcher.LevelCritical,
		Title:   "Over budget: Equipment",
		Message: "$120.00 over a $1,000.00 budget",
		Time:    time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC),
	})
	out := buf.String()
	assert.Contains(t, out, "[09:30:00]")
	assert.Contains(t, out, "Over budget: Equipment")
	assert.Contains(t, out, "$120.00 over")
}
