package service

import (
	"context"
	"errors"
	"testing"

	"github.com/djones2085/ffp/internal/draft"
	"github.com/djones2085/ffp/internal/metrics"
	"github.com/djones2085/ffp/internal/models"
	"github.com/djones2085/ffp/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	players []models.Player
	picks   []models.DraftPick
	err     error
	calls   int
}

func (f *fakeSource) GetPlayerTable(ctx context.Context) (*models.PlayerTable, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return models.NewPlayerTable(f.players)
}

func (f *fakeSource) GetDraftPicks(ctx context.Context, draftID string) ([]models.DraftPick, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.picks, nil
}

func testPlayers() []models.Player {
	return []models.Player{
		{ID: "4046", Name: "Patrick Mahomes", Position: models.QB, Team: "KC", Projection: 20},
		{ID: "4984", Name: "Josh Allen", Position: models.QB, Team: "BUF", Projection: 10},
		{ID: "9509", Name: "Bijan Robinson", Position: models.RB, Team: "ATL", Projection: 15},
		{ID: "8155", Name: "Breece Hall", Position: models.RB, Team: "NYJ", Projection: 5},
	}
}

func newTestService(t *testing.T, src *fakeSource) *DraftService {
	t.Helper()
	tmpl, err := draft.ParseTemplate("QB,RB")
	require.NoError(t, err)
	settings := Settings{
		Teams:    []string{"MyTeam", "Rival"},
		MyTeam:   "MyTeam",
		Template: tmpl,
		Order:    draft.OrderFixed,
		Workers:  2,
		DraftID:  "draft-1",
	}
	return NewDraftService(src, memory.NewRepository(), settings, metrics.NewMetrics("test"))
}

func TestResolveTeam(t *testing.T) {
	s := newTestService(t, &fakeSource{players: testPlayers()})

	team, err := s.ResolveTeam("")
	require.NoError(t, err)
	assert.Equal(t, "MyTeam", team)

	team, err = s.ResolveTeam("rivl")
	require.NoError(t, err)
	assert.Equal(t, "Rival", team)

	_, err = s.ResolveTeam("nobody")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestRecordPick(t *testing.T) {
	s := newTestService(t, &fakeSource{players: testPlayers()})
	ctx := context.Background()

	player, team, err := s.RecordPick(ctx, "rival", "mahomes")
	require.NoError(t, err)
	assert.Equal(t, "4046", player.ID)
	assert.Equal(t, "Rival", team)

	roster, err := s.Roster(ctx, "Rival")
	require.NoError(t, err)
	assert.Equal(t, "4046", roster.Slots[0].PlayerID)
	assert.Equal(t, 20.0, roster.Total)

	_, _, err = s.RecordPick(ctx, "MyTeam", "4046")
	assert.ErrorIs(t, err, draft.ErrAlreadyDrafted)

	_, _, err = s.RecordPick(ctx, "MyTeam", "Patrick Mahomes")
	assert.ErrorIs(t, err, draft.ErrAlreadyDrafted)

	_, _, err = s.RecordPick(ctx, "MyTeam", "zzzz")
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	// Rival's only QB slot is taken
	_, _, err = s.RecordPick(ctx, "Rival", "Josh Allen")
	assert.ErrorIs(t, err, draft.ErrNoSlotAvailable)
}

func TestRecordPickPrefersAvailableNamesake(t *testing.T) {
	players := append(testPlayers(), models.Player{ID: "7001", Name: "Josh Allen", Position: models.RB, Team: "JAX", Projection: 3})
	s := newTestService(t, &fakeSource{players: players})
	ctx := context.Background()

	player, _, err := s.RecordPick(ctx, "Rival", "4984")
	require.NoError(t, err)
	assert.Equal(t, models.QB, player.Position)

	player, team, err := s.RecordPick(ctx, "MyTeam", "josh allen")
	require.NoError(t, err)
	assert.Equal(t, "7001", player.ID)
	assert.Equal(t, "MyTeam", team)

	// no undrafted namesake left
	_, _, err = s.RecordPick(ctx, "MyTeam", "Josh Allen")
	assert.ErrorIs(t, err, draft.ErrAlreadyDrafted)
}

func TestUndoPick(t *testing.T) {
	s := newTestService(t, &fakeSource{players: testPlayers()})
	ctx := context.Background()

	_, _, err := s.RecordPick(ctx, "MyTeam", "Bijan Robinson")
	require.NoError(t, err)

	player, team, err := s.UndoPick(ctx, "MyTeam")
	require.NoError(t, err)
	assert.Equal(t, "Bijan Robinson", player.Name)
	assert.Equal(t, "MyTeam", team)

	_, _, err = s.UndoPick(ctx, "MyTeam")
	assert.Error(t, err)

	top, err := s.TopAvailable(ctx, "RB", 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "9509", top[0].Player.ID)
}

func TestBestPick(t *testing.T) {
	s := newTestService(t, &fakeSource{players: testPlayers()})

	result, err := s.BestPick(context.Background(), "")
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, "MyTeam", result.Team)
	// Mahomes and Robinson both finish at 35; the lower ID wins the tie
	assert.Equal(t, "4046", result.Player.ID)
	assert.Equal(t, 35.0, result.Total)
	assert.Len(t, result.Candidates, 4)
}

func TestBestPicks(t *testing.T) {
	s := newTestService(t, &fakeSource{players: testPlayers()})
	ctx := context.Background()

	_, _, err := s.RecordPick(ctx, "MyTeam", "Patrick Mahomes")
	require.NoError(t, err)
	_, _, err = s.RecordPick(ctx, "MyTeam", "Bijan Robinson")
	require.NoError(t, err)

	results, err := s.BestPicks(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[0].Found, "MyTeam is full")
	assert.True(t, results[1].Found)
}

func TestRecommend(t *testing.T) {
	s := newTestService(t, &fakeSource{players: testPlayers()})
	ctx := context.Background()

	rec, err := s.Recommend(ctx, "")
	require.NoError(t, err)
	require.True(t, rec.Found)
	require.NotNil(t, rec.Player)
	assert.Equal(t, "4046", rec.Player.ID)
	assert.Equal(t, 35.0, rec.Total)

	require.Len(t, rec.Rosters, 2)
	mine := rec.Rosters[0]
	assert.Equal(t, "MyTeam", mine.TeamName)
	assert.Equal(t, 35.0, mine.Total)
	require.Len(t, mine.Slots, 2)
	assert.Equal(t, "QB", mine.Slots[0].Slot)
	require.NotNil(t, mine.Slots[0].Player)
	assert.Equal(t, "Patrick Mahomes", mine.Slots[0].Player.Name)
	assert.Equal(t, "Rival", rec.Rosters[1].TeamName)

	// recommending does not record anything
	roster, err := s.Roster(ctx, "MyTeam")
	require.NoError(t, err)
	assert.Empty(t, roster.Slots[0].PlayerID)
}

func TestRecommendations(t *testing.T) {
	s := newTestService(t, &fakeSource{players: testPlayers()})
	ctx := context.Background()

	_, _, err := s.RecordPick(ctx, "MyTeam", "Patrick Mahomes")
	require.NoError(t, err)
	_, _, err = s.RecordPick(ctx, "MyTeam", "Bijan Robinson")
	require.NoError(t, err)

	recs, err := s.Recommendations(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.False(t, recs[0].Found)
	assert.Nil(t, recs[0].Player)
	assert.True(t, recs[1].Found)
	assert.Empty(t, recs[1].Rosters)
}

func TestTopAvailable(t *testing.T) {
	s := newTestService(t, &fakeSource{players: testPlayers()})
	ctx := context.Background()

	_, _, err := s.RecordPick(ctx, "Rival", "Patrick Mahomes")
	require.NoError(t, err)

	qbs, err := s.TopAvailable(ctx, "qb", 5)
	require.NoError(t, err)
	require.Len(t, qbs, 1)
	assert.Equal(t, "Josh Allen", qbs[0].Player.Name)
	assert.Equal(t, 0.0, qbs[0].VORP)

	all, err := s.TopAvailable(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = s.TopAvailable(ctx, "LB", 5)
	assert.ErrorIs(t, err, models.ErrUnknownPosition)
}

func TestImportDraft(t *testing.T) {
	src := &fakeSource{
		players: testPlayers(),
		picks: []models.DraftPick{
			{PickNo: 1, DraftSlot: 2, PlayerID: "9509"},
			{PickNo: 2, DraftSlot: 1, PlayerID: "4046"},
			{PickNo: 3, DraftSlot: 7, PlayerID: "4984"},
		},
	}
	s := newTestService(t, src)
	ctx := context.Background()

	n, err := s.ImportDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	roster, err := s.Roster(ctx, "Rival")
	require.NoError(t, err)
	assert.Equal(t, "9509", roster.Slots[1].PlayerID)

	s.settings.DraftID = ""
	_, err = s.ImportDraft(ctx)
	assert.ErrorIs(t, err, ErrNoDraftID)
}

func TestBoard_UsesStalePoolWhenRefreshFails(t *testing.T) {
	src := &fakeSource{players: testPlayers()}
	s := newTestService(t, src)
	s.settings.PoolTTL = 1
	ctx := context.Background()

	_, err := s.Board(ctx)
	require.NoError(t, err)

	src.err = errors.New("sleeper down")
	b, err := s.Board(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Table.Len())
	assert.Equal(t, 2, src.calls)
}

func TestBoard_FailsWithoutPool(t *testing.T) {
	s := newTestService(t, &fakeSource{err: errors.New("sleeper down")})

	_, err := s.Board(context.Background())
	assert.Error(t, err)
}

func TestReports(t *testing.T) {
	s := newTestService(t, &fakeSource{players: testPlayers()})
	ctx := context.Background()

	report, err := s.GetBaselinesReport(ctx)
	require.NoError(t, err)
	assert.Contains(t, report, "*QB*: 10.0 pts (Josh Allen, rank 2)")
	assert.Contains(t, report, "*K*: no players")

	report, err = s.GetBestPickReport(ctx, "MyTeam")
	require.NoError(t, err)
	assert.Contains(t, report, "*Patrick Mahomes* (QB, KC)")
	assert.Contains(t, report, "Bijan Robinson: 35.0 pts (+0.0)")

	report, err = s.GetPickReport(ctx, "Rival", "Breece Hall")
	require.NoError(t, err)
	assert.Contains(t, report, "*Rival* drafted Breece Hall")

	report, err = s.GetRosterReport(ctx, "Rival")
	require.NoError(t, err)
	assert.Contains(t, report, "QB: _empty_")
	assert.Contains(t, report, "RB: Breece Hall (RB) 5.0")

	report, err = s.GetDraftBoardReport(ctx)
	require.NoError(t, err)
	assert.Contains(t, report, "*Rival*: 1/2 filled, 5.0 pts")
	assert.Contains(t, report, "Next for *MyTeam*")
}
