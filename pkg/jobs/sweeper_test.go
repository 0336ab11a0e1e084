package jobs

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeper_StartRejectsInvalidSchedule(t *testing.T) {
	s := NewSweeper(nil, slog.Default())
	err := s.Start("not a cron expression")
	assert.Error(t, err)
}

func TestSweeper_StartStop(t *testing.T) {
	s := NewSweeper(nil, slog.Default())
	require.NoError(t, s.Start("@daily"))
	s.Stop()
}

func TestSweeper_StopBeforeStart(t *testing.T) {
	s := NewSweeper(nil, slog.Default())
	s.Stop() // must not panic
}
