package mission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mission-tracker/internal/model"
)

func TestParseSeedEmbedded(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	missions, err := ParseSeed(seedYAML, now)
	require.NoError(t, err)
	require.Len(t, missions, 3)

	dash := missions[0]
	assert.Equal(t, model.PriorityHigh, dash.Priority)
	assert.Equal(t, model.StatusActive, dash.Status)
	assert.True(t, dash.CreatedAt.Equal(now))
	require.NotNil(t, dash.TargetAt)
	assert.True(t, dash.TargetAt.Equal(now.Add(72*time.Hour)))

	lang := missions[1]
	assert.Equal(t, model.StatusCompleted, lang.Status)
	require.NotNil(t, lang.CompletedAt)
	assert.True(t, lang.CompletedAt.Equal(now.Add(-12*time.Hour)))
	assert.Nil(t, lang.TargetAt)

	deploy := missions[2]
	assert.Equal(t, model.PriorityLow, deploy.Priority)
	assert.True(t, deploy.PastTarget(now))
}

func TestParseSeedErrors(t *testing.T) {
	now := time.Now()

	_, err := ParseSeed([]byte("missions: [unterminated"), now)
	assert.Error(t, err)

	_, err = ParseSeed([]byte("missions:\n  - title: x\n    target: soon\n"), now)
	assert.ErrorContains(t, err, "seed mission 0 target")
}

func TestParseSeedDefaults(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	missions, err := ParseSeed([]byte("missions:\n  - title: bare\n"), now)
	require.NoError(t, err)
	require.Len(t, missions, 1)
	assert.Equal(t, model.PriorityMedium, missions[0].Priority)
	assert.True(t, missions[0].CreatedAt.Equal(now))
	assert.Equal(t, model.StatusActive, missions[0].Status)
}
