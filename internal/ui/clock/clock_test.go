package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestView(t *testing.T) {
	now := time.Date(2026, 10, 16, 21, 5, 9, 0, time.UTC)
	assert.Equal(t, "21:05:09  Friday, October 16, 2026", View(now, true))
	assert.Equal(t, "09:05:09 PM  Friday, October 16, 2026", View(now, false))
}
