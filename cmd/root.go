package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/curanostics/curanostics/internal/config"
	"github.com/curanostics/curanostics/internal/logging"
	"github.com/curanostics/curanostics/internal/store"
)

var (
	cfg    = config.DefaultConfig()
	logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "curanostics",
	Short: "Patient companion for oncology care",
	Long: "Curanostics: terminal dashboard for patients in oncology care: " +
		"GAD-7 and social-needs screenings, daily symptom check-ins, and AI insights.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CURANOSTICS_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/curanostics/config.yaml)")

	rootCmd.AddCommand(surveyCmd)
	rootCmd.AddCommand(symptomCmd)
	rootCmd.AddCommand(insightCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the config file and builds the logger.
func setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded

	logPath := cfg.LogFile
	if logPath == "" {
		if logPath, err = logging.DefaultPath(); err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
	}
	l, err := logging.New(cfg.LogLevel, logPath)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("config loaded", zap.String("path", path))
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CURANOSTICS_DB env var, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	flag, _ := cmd.Flags().GetString("db")
	if p := cfg.ResolveDBPath(flag); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
