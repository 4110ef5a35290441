// Package cli defines the missiontracker command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/mission-tracker/internal/app"
	"github.com/nhle/mission-tracker/internal/mission"
	"github.com/nhle/mission-tracker/internal/model"
	"github.com/nhle/mission-tracker/internal/notify"
	"github.com/nhle/mission-tracker/internal/store"
	appsync "github.com/nhle/mission-tracker/internal/sync"
	"github.com/nhle/mission-tracker/internal/theme"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type rootOptions struct {
	configPath string
	noSeed     bool
	logFile    string
}

var opts rootOptions

var rootCmd = &cobra.Command{
	Use:           "missiontracker",
	Short:         "Track personal missions against their deadlines",
	Long:          `A terminal dashboard for missions: priorities, target dates, overdue detection, a live countdown and completion stats.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runTUI(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", model.DefaultConfigPath(), "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&opts.noSeed, "no-seed", false, "start with an empty mission list")
	rootCmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file (default from config)")

	rootCmd.AddCommand(versionCmd, statsCmd, configCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.noSeed {
		cfg.Missions.Seed = false
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	return cfg, nil
}

// newManager builds an in-memory store and a manager over it, seeded
// according to cfg.
func newManager(ctx context.Context, cfg *model.AppConfig) (*mission.Manager, func() error, error) {
	s, err := store.NewSQLiteStore(store.InMemory)
	if err != nil {
		return nil, nil, fmt.Errorf("opening mission store: %w", err)
	}

	notes := notify.New(cfg.Missions.NotificationTTL())
	mgr := mission.NewManager(s, notes)
	if err := mgr.Init(ctx, cfg.Missions.Seed); err != nil {
		_ = s.Close()
		return nil, nil, fmt.Errorf("initializing missions: %w", err)
	}
	return mgr, s.Close, nil
}

func runTUI(ctx context.Context, cfg *model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.Log.File, "missiontracker")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	theme.Use(cfg.Display.Theme)

	mgr, closeStore, err := newManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sched := appsync.New()
	app.RegisterJobs(sched, mgr, cfg.Missions)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	p := tea.NewProgram(app.New(mgr, sched, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
