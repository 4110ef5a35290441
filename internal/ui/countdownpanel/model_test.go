package countdownpanel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/mission-tracker/internal/countdown"
)

func TestView(t *testing.T) {
	at := time.Now()

	v := View(Target{Label: "Reach orbit", At: &at}, countdown.TimeLeft{Days: 3, Hours: 4}, 40)
	assert.Contains(t, v, "Reach orbit")
	assert.Contains(t, v, "03")
	assert.Contains(t, v, "days")

	v = View(Target{Label: "Reach orbit", At: &at}, countdown.TimeLeft{Overdue: true}, 40)
	assert.Contains(t, v, "Mission is overdue!")

	v = View(Target{Label: "Open-ended"}, countdown.TimeLeft{}, 40)
	assert.Contains(t, v, "No target date set.")
}
