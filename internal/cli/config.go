package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/mission-tracker/internal/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to --config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(opts.configPath); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
		}
		if err := model.SaveConfig(opts.configPath, model.DefaultAppConfig()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "display.theme:                       %s\n", cfg.Display.Theme)
		fmt.Fprintf(w, "display.clock_24h:                   %t\n", cfg.Display.Clock24)
		fmt.Fprintf(w, "missions.seed:                       %t\n", cfg.Missions.Seed)
		fmt.Fprintf(w, "missions.overdue_check_interval_sec: %d\n", cfg.Missions.OverdueCheckIntervalSec)
		fmt.Fprintf(w, "missions.notification_ttl_sec:      %d\n", cfg.Missions.NotificationTTLSec)
		fmt.Fprintf(w, "missions.goal_days:                  %d\n", cfg.Missions.GoalDays)
		fmt.Fprintf(w, "missions.highlight_sec:              %d\n", cfg.Missions.HighlightSec)
		fmt.Fprintf(w, "log.file:                            %s\n", cfg.Log.File)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
}
