package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nhle/mission-tracker/internal/mission"
	"github.com/nhle/mission-tracker/internal/model"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print mission statistics without starting the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mgr, closeStore, err := newManager(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		st, err := mgr.Stats(cmd.Context())
		if err != nil {
			return err
		}
		missions, err := mgr.Missions(cmd.Context(), model.FilterAll)
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), st, missions, mgr)
		return nil
	},
}

func printStats(w io.Writer, st model.Stats, missions []model.Mission, mgr *mission.Manager) {
	fmt.Fprintf(w, "Total:      %d\n", st.Total)
	fmt.Fprintf(w, "Active:     %d\n", st.Active)
	fmt.Fprintf(w, "Completed:  %d\n", st.Completed)
	fmt.Fprintf(w, "Overdue:    %d\n", st.Overdue)
	fmt.Fprintf(w, "Completion: %d%%\n", st.CompletionRate)

	if len(missions) == 0 {
		return
	}
	fmt.Fprintln(w)
	now := mgr.Now()
	for _, m := range missions {
		line := fmt.Sprintf("[%-9s] %-6s %s", m.Status, m.Priority, m.Title)
		if m.IsOverdue() && m.TargetAt != nil {
			line += " (overdue by " + mission.FormatOverdue(*m.TargetAt, now) + ")"
		}
		fmt.Fprintln(w, line)
	}
}
