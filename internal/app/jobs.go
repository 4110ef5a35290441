package app

import (
	"context"
	"time"

	"github.com/nhle/mission-tracker/internal/mission"
	"github.com/nhle/mission-tracker/internal/model"
	appsync "github.com/nhle/mission-tracker/internal/sync"
)

// notificationSweepInterval is how often expired notifications are dropped
// even if their expiry timer never fired.
const notificationSweepInterval = time.Second

// RegisterJobs wires the manager's recurring work into the scheduler: the
// overdue check at the configured interval and the notification sweep.
func RegisterJobs(s *appsync.Scheduler, mgr *mission.Manager, cfg model.MissionsConfig) {
	s.Register(appsync.Job{
		Name:     appsync.JobOverdueCheck,
		Interval: cfg.OverdueCheckInterval(),
		Run:      mgr.CheckOverdue,
	})
	s.Register(appsync.Job{
		Name:     appsync.JobNotificationSweep,
		Interval: notificationSweepInterval,
		Run: func(context.Context) (int, error) {
			return mgr.SweepNotifications(), nil
		},
	})
}
