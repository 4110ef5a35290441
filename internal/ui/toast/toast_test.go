package toast

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/mission-tracker/internal/model"
)

func TestViewEmpty(t *testing.T) {
	assert.Empty(t, View(nil, 40))
}

func TestViewKeepsNewest(t *testing.T) {
	var notes []model.Notification
	for i := 0; i < 5; i++ {
		notes = append(notes, model.Notification{
			Type:  model.NotificationInfo,
			Title: fmt.Sprintf("note-%d", i),
		})
	}

	v := View(notes, 40)
	assert.NotContains(t, v, "note-1")
	assert.Contains(t, v, "note-2")
	assert.Contains(t, v, "note-4")
}
