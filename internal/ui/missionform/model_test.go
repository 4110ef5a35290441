package missionform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mission-tracker/internal/model"
)

func TestParseTarget(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	got, err := ParseTarget(" 2026-11-01 09:30 ", loc)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(time.Date(2026, 11, 1, 7, 30, 0, 0, time.UTC)))

	got, err = ParseTarget("", loc)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseTarget("2026-11-01", loc)
	assert.Error(t, err)
}

func TestValidateRequired(t *testing.T) {
	v := validateRequired("Title")
	assert.Error(t, v("   "))
	assert.NoError(t, v("Launch"))
}

func TestSubmitCreate(t *testing.T) {
	m := New(time.UTC, 80, 24)
	m.StartCreate()
	m.fb.title = "  Dock with station "
	m.fb.priority = model.PriorityHigh
	m.fb.target = "2026-12-24 18:00"

	msg, ok := m.submit()().(CreatedMsg)
	require.True(t, ok)
	assert.Equal(t, "Dock with station", msg.Mission.Title)
	assert.Equal(t, model.PriorityHigh, msg.Mission.Priority)
	require.NotNil(t, msg.Mission.TargetAt)
	assert.Equal(t, 24, msg.Mission.TargetAt.Day())
}

func TestSubmitEditClearsTarget(t *testing.T) {
	target := time.Date(2026, 12, 1, 10, 0, 0, 0, time.UTC)
	m := New(time.UTC, 80, 24)
	m.StartEdit(model.Mission{ID: "m1", Title: "Old", Priority: model.PriorityLow, TargetAt: &target})
	assert.Equal(t, "2026-12-01 10:00", m.fb.target)

	m.fb.target = ""
	msg, ok := m.submit()().(UpdatedMsg)
	require.True(t, ok)
	assert.Equal(t, "m1", msg.ID)
	assert.True(t, msg.Patch.ClearTarget)
	require.NotNil(t, msg.Patch.Priority)
	assert.Equal(t, model.PriorityLow, *msg.Patch.Priority)
}
