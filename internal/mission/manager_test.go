package mission_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mission-tracker/internal/mission"
	"github.com/nhle/mission-tracker/internal/model"
	"github.com/nhle/mission-tracker/internal/notify"
	"github.com/nhle/mission-tracker/internal/store"
	"github.com/nhle/mission-tracker/tests/testutil"
)

var start = time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC)

type fixture struct {
	ctx   context.Context
	clock *testutil.Clock
	mgr   *mission.Manager
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	clock := testutil.NewClock(start)
	s := testutil.NewTestStore(t)
	notes := notify.New(5*time.Second, notify.WithClock(clock.Now))
	return fixture{
		ctx:   context.Background(),
		clock: clock,
		mgr:   mission.NewManager(s, notes, mission.WithClock(clock.Now)),
	}
}

func (f fixture) add(t *testing.T, title string, target *time.Time) model.Mission {
	t.Helper()
	m, err := f.mgr.AddMission(f.ctx, mission.NewMission{Title: title, TargetAt: target})
	require.NoError(t, err)
	return m
}

func at(t time.Time) *time.Time { return &t }

func TestAddMission(t *testing.T) {
	f := newFixture(t)

	m, err := f.mgr.AddMission(f.ctx, mission.NewMission{
		Title:       "  Map the asteroid belt  ",
		Description: "survey",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Map the asteroid belt", m.Title)
	assert.Equal(t, model.PriorityMedium, m.Priority)
	assert.Equal(t, model.StatusActive, m.Status)
	assert.True(t, m.CreatedAt.Equal(start))
	assert.Nil(t, m.CompletedAt)

	notes := f.mgr.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, model.NotificationInfo, notes[0].Type)
	assert.Equal(t, "Mission Launched", notes[0].Title)
	assert.Contains(t, notes[0].Message, `"Map the asteroid belt"`)
}

func TestAddMissionRejectsBlankTitle(t *testing.T) {
	f := newFixture(t)

	_, err := f.mgr.AddMission(f.ctx, mission.NewMission{Title: "   "})
	assert.ErrorIs(t, err, mission.ErrEmptyTitle)

	missions, err := f.mgr.Missions(f.ctx, model.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, missions)
	assert.Empty(t, f.mgr.Notifications())
}

func TestCheckOverdue(t *testing.T) {
	f := newFixture(t)

	late := f.add(t, "late", at(start.Add(-time.Second)))
	future := f.add(t, "future", at(start.Add(time.Hour)))
	open := f.add(t, "open-ended", nil)

	n, err := f.mgr.CheckOverdue(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assertStatus(t, f, late.ID, model.StatusOverdue)
	assertStatus(t, f, future.ID, model.StatusActive)
	assertStatus(t, f, open.ID, model.StatusActive)

	n, err = f.mgr.CheckOverdue(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "second run is a no-op")

	f.clock.Advance(2 * time.Hour)
	n, err = f.mgr.CheckOverdue(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assertStatus(t, f, future.ID, model.StatusOverdue)
}

func TestCheckOverdueTargetExactlyNowStaysActive(t *testing.T) {
	f := newFixture(t)

	m := f.add(t, "boundary", at(start))
	_, err := f.mgr.CheckOverdue(f.ctx)
	require.NoError(t, err)
	assertStatus(t, f, m.ID, model.StatusActive)
}

func TestCompletedIsTerminal(t *testing.T) {
	f := newFixture(t)

	m := f.add(t, "finish", at(start.Add(time.Minute)))
	changed, err := f.mgr.CompleteMission(f.ctx, m.ID)
	require.NoError(t, err)
	require.True(t, changed)

	for i := 0; i < 3; i++ {
		f.clock.Advance(time.Hour)
		_, err := f.mgr.CheckOverdue(f.ctx)
		require.NoError(t, err)
		assertStatus(t, f, m.ID, model.StatusCompleted)
	}
}

func TestCompleteMission(t *testing.T) {
	f := newFixture(t)

	m := f.add(t, "overdue one", at(start.Add(-time.Hour)))
	_, err := f.mgr.CheckOverdue(f.ctx)
	require.NoError(t, err)

	callTime := f.clock.Now()
	f.clock.Advance(time.Second)
	changed, err := f.mgr.CompleteMission(f.ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := f.mgr.Mission(f.ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, got.CompletedAt.Before(callTime))

	notes := f.mgr.Notifications()
	require.Len(t, notes, 2)
	assert.Equal(t, model.NotificationSuccess, notes[1].Type)
	assert.Equal(t, "Mission Complete!", notes[1].Title)

	f.clock.Advance(time.Second)
	changed, err = f.mgr.CompleteMission(f.ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	again, err := f.mgr.Mission(f.ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, again.CompletedAt.Equal(*got.CompletedAt))
	assert.Len(t, f.mgr.Notifications(), 2)
}

func TestCompleteUnknownMissionIsNoop(t *testing.T) {
	f := newFixture(t)

	changed, err := f.mgr.CompleteMission(f.ctx, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, f.mgr.Notifications())
}

func TestStats(t *testing.T) {
	f := newFixture(t)

	st, err := f.mgr.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{}, st)

	a := f.add(t, "a", nil)
	f.add(t, "b", nil)
	f.add(t, "c", at(start.Add(-time.Minute)))
	_, err = f.mgr.CompleteMission(f.ctx, a.ID)
	require.NoError(t, err)
	_, err = f.mgr.CheckOverdue(f.ctx)
	require.NoError(t, err)

	st, err = f.mgr.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, st.Total, st.Active+st.Completed+st.Overdue)
	assert.Equal(t, 1, st.Active)
	assert.Equal(t, 1, st.Completed)
	assert.Equal(t, 1, st.Overdue)
	assert.Equal(t, 33, st.CompletionRate)
}

func TestMissionsOrdering(t *testing.T) {
	f := newFixture(t)

	var ids []string
	for i := 0; i < 6; i++ {
		var target *time.Time
		if i%3 == 0 {
			target = at(start.Add(time.Duration(i) * time.Minute))
		}
		ids = append(ids, f.add(t, fmt.Sprintf("m%d", i), target).ID)
		f.clock.Advance(time.Minute)
	}
	_, err := f.mgr.CompleteMission(f.ctx, ids[1])
	require.NoError(t, err)
	_, err = f.mgr.CompleteMission(f.ctx, ids[4])
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	_, err = f.mgr.CheckOverdue(f.ctx)
	require.NoError(t, err)

	missions, err := f.mgr.Missions(f.ctx, model.FilterAll)
	require.NoError(t, err)

	var titles []string
	for _, m := range missions {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"m3", "m0", "m5", "m2", "m4", "m1"}, titles)

	rank := map[model.Status]int{model.StatusOverdue: 0, model.StatusActive: 1, model.StatusCompleted: 2}
	for i := 1; i < len(missions); i++ {
		prev, cur := missions[i-1], missions[i]
		require.LessOrEqual(t, rank[prev.Status], rank[cur.Status])
		if prev.Status == cur.Status {
			assert.False(t, prev.CreatedAt.Before(cur.CreatedAt))
		}
	}

	overdue, err := f.mgr.Missions(f.ctx, model.FilterOverdue)
	require.NoError(t, err)
	assert.Len(t, overdue, 2)
}

func TestSearch(t *testing.T) {
	f := newFixture(t)

	f.add(t, "Calibrate telescope", nil)
	done := f.add(t, "Polish telescope mirror", nil)
	f.add(t, "Write report", nil)
	_, err := f.mgr.CompleteMission(f.ctx, done.ID)
	require.NoError(t, err)

	got, err := f.mgr.Search(f.ctx, model.FilterAll, "telescope")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.mgr.Search(f.ctx, model.FilterActive, " telescope ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Calibrate telescope", got[0].Title)

	got, err = f.mgr.Search(f.ctx, model.FilterAll, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestDeleteClearsSelection(t *testing.T) {
	f := newFixture(t)

	tracked := f.add(t, "tracked", nil)
	other := f.add(t, "other", nil)
	f.mgr.Select(tracked.ID)

	require.NoError(t, f.mgr.DeleteMission(f.ctx, other.ID))
	assert.Equal(t, tracked.ID, f.mgr.SelectedID())

	sel, err := f.mgr.Selected(f.ctx)
	require.NoError(t, err)
	require.NotNil(t, sel)
	assert.Equal(t, "tracked", sel.Title)

	require.NoError(t, f.mgr.DeleteMission(f.ctx, tracked.ID))
	assert.Empty(t, f.mgr.SelectedID())

	sel, err = f.mgr.Selected(f.ctx)
	require.NoError(t, err)
	assert.Nil(t, sel)

	require.NoError(t, f.mgr.DeleteMission(f.ctx, "unknown"))
}

func TestUpdateMissionMergesFields(t *testing.T) {
	f := newFixture(t)

	m := f.add(t, "draft", nil)
	title := "final"
	prio := model.PriorityHigh
	target := start.Add(24 * time.Hour)
	require.NoError(t, f.mgr.UpdateMission(f.ctx, m.ID, model.MissionPatch{
		Title:    &title,
		Priority: &prio,
		TargetAt: &target,
	}))

	got, err := f.mgr.Mission(f.ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	require.NotNil(t, got.TargetAt)
	assert.True(t, got.TargetAt.Equal(target))
	assert.True(t, got.CreatedAt.Equal(m.CreatedAt))

	require.NoError(t, f.mgr.UpdateMission(f.ctx, m.ID, model.MissionPatch{ClearTarget: true}))
	got, err = f.mgr.Mission(f.ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TargetAt)

	require.NoError(t, f.mgr.UpdateMission(f.ctx, "unknown", model.MissionPatch{Title: &title}))
}

func TestUpdateMissionDoesNotRederiveStatus(t *testing.T) {
	f := newFixture(t)

	m := f.add(t, "late", at(start.Add(-time.Hour)))
	_, err := f.mgr.CheckOverdue(f.ctx)
	require.NoError(t, err)

	later := start.Add(48 * time.Hour)
	require.NoError(t, f.mgr.UpdateMission(f.ctx, m.ID, model.MissionPatch{TargetAt: &later}))
	assertStatus(t, f, m.ID, model.StatusOverdue)
}

func TestNotificationLifecycle(t *testing.T) {
	f := newFixture(t)

	f.add(t, "first", nil)
	f.clock.Advance(2 * time.Second)
	f.add(t, "second", nil)

	notes := f.mgr.Notifications()
	require.Len(t, notes, 2)
	f.mgr.DismissNotification(notes[1].ID)
	f.mgr.DismissNotification(notes[1].ID)

	for elapsed := 2 * time.Second; elapsed < 5*time.Second; elapsed += time.Second {
		active := f.mgr.Notifications()
		require.Len(t, active, 1)
		assert.Equal(t, notes[0].ID, active[0].ID)
		f.clock.Advance(time.Second)
	}

	assert.Empty(t, f.mgr.Notifications())
	f.mgr.ExpireNotification(notes[0].ID)
	assert.Zero(t, f.mgr.SweepNotifications())
}

func TestNotifyCountdownComplete(t *testing.T) {
	f := newFixture(t)

	m := f.add(t, "Reach orbit", nil)
	n, err := f.mgr.NotifyCountdownComplete(f.ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationOverdue, n.Type)
	assert.Contains(t, n.Message, `"Reach orbit"`)

	n, err = f.mgr.NotifyCountdownComplete(f.ctx, "")
	require.NoError(t, err)
	assert.Equal(t, model.NotificationWarning, n.Type)
}

func TestDeployServiceScenario(t *testing.T) {
	f := newFixture(t)

	_, err := f.mgr.AddMission(f.ctx, mission.NewMission{
		Title:    "Deploy service",
		Priority: model.PriorityHigh,
		TargetAt: at(start.Add(-time.Second)),
	})
	require.NoError(t, err)

	_, err = f.mgr.CheckOverdue(f.ctx)
	require.NoError(t, err)

	missions, err := f.mgr.Missions(f.ctx, model.FilterAll)
	require.NoError(t, err)
	require.Len(t, missions, 1)
	assert.Equal(t, model.StatusOverdue, missions[0].Status)
	assert.Equal(t, model.PriorityHigh, missions[0].Priority)

	st, err := f.mgr.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Total: 1, Overdue: 1}, st)

	notes := f.mgr.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, model.NotificationInfo, notes[0].Type)
}

func TestInitWithSeed(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.mgr.Init(f.ctx, true))

	st, err := f.mgr.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{
		Total:          3,
		Active:         1,
		Completed:      1,
		Overdue:        1,
		CompletionRate: 33,
	}, st)
	assert.Empty(t, f.mgr.Notifications(), "seeding is silent")

	missions, err := f.mgr.Missions(f.ctx, model.FilterAll)
	require.NoError(t, err)
	require.Len(t, missions, 3)
	assert.Equal(t, "Deploy to production", missions[0].Title)
	assert.Equal(t, "Complete the cosmic dashboard", missions[1].Title)
	assert.Equal(t, "Learn a new programming language", missions[2].Title)
}

// failingStore wraps a real store and fails selected calls.
type failingStore struct {
	store.Store
	err error
}

func (s failingStore) GetMissions(context.Context, store.MissionFilter) ([]model.Mission, error) {
	return nil, s.err
}

func (s failingStore) CreateMission(context.Context, model.Mission) error {
	return s.err
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	boom := errors.New("disk on fire")
	s := failingStore{Store: testutil.NewTestStore(t), err: boom}
	mgr := mission.NewManager(s, notify.New(time.Second))
	ctx := context.Background()

	_, err := mgr.CheckOverdue(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = mgr.AddMission(ctx, mission.NewMission{Title: "x"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, mgr.Notifications(), "failed add raises nothing")
}

func assertStatus(t *testing.T, f fixture, id string, want model.Status) {
	t.Helper()
	m, err := f.mgr.Mission(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, want, m.Status)
}
