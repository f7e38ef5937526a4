package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/djones2085/ffp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobs struct {
	refreshes int
	boardErr  error
}

func (f *fakeJobs) Refresh(ctx context.Context) (int, error) {
	f.refreshes++
	return 10, nil
}

func (f *fakeJobs) GetDraftBoardReport(ctx context.Context) (string, error) {
	if f.boardErr != nil {
		return "", f.boardErr
	}
	return "board", nil
}

func TestScheduler_StartRegistersJobs(t *testing.T) {
	cfg := config.Scheduler{RefreshCron: "0 6 * * *", BoardCron: "0 9 * * *", Timezone: "America/Chicago"}
	s, err := NewScheduler(cfg, &fakeJobs{}, func(string) error { return nil })
	require.NoError(t, err)

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Len(t, s.s.Jobs(), 2)
}

func TestScheduler_SkipsBoardWithoutSender(t *testing.T) {
	cfg := config.Scheduler{RefreshCron: "0 6 * * *", BoardCron: "0 9 * * *", Timezone: "Not/AZone"}
	s, err := NewScheduler(cfg, &fakeJobs{}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Len(t, s.s.Jobs(), 1)
}

func TestScheduler_InvalidCron(t *testing.T) {
	s, err := NewScheduler(config.Scheduler{RefreshCron: "not cron", Timezone: "UTC"}, &fakeJobs{}, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestScheduler_Tasks(t *testing.T) {
	jobs := &fakeJobs{}
	var sent []string
	s, err := NewScheduler(config.Scheduler{Timezone: "UTC"}, jobs, func(text string) error {
		sent = append(sent, text)
		return nil
	})
	require.NoError(t, err)

	s.refreshPlayers()
	assert.Equal(t, 1, jobs.refreshes)

	s.sendDraftBoard()
	assert.Equal(t, []string{"board"}, sent)

	jobs.boardErr = errors.New("no pool")
	s.sendDraftBoard()
	assert.Len(t, sent, 1)
}
