package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/curanostics/curanostics/internal/app"
	"github.com/curanostics/curanostics/internal/store"
	"github.com/curanostics/curanostics/internal/surveys"
	"github.com/curanostics/curanostics/internal/symptoms"
)

// runApp launches the dashboard. It holds the database lock for the whole
// session so a second dashboard cannot interleave writes.
func runApp(cmd *cobra.Command) error {
	path, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	lock, err := store.AcquireLock(path)
	switch {
	case errors.Is(err, store.ErrLocked):
		return fmt.Errorf("%w: %s", err, path)
	case err != nil:
		return err
	}
	defer lock.Release()

	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	opts, err := appOptions(cmd, st.EventRepo())
	if err != nil {
		return err
	}
	logger.Info("starting dashboard", zap.String("db", path), zap.Bool("ai", opts.Insights != nil))
	return app.Run(opts)
}

func appOptions(cmd *cobra.Command, repo store.EventRepo) (app.Options, error) {
	ctx := cmd.Context()
	opts := app.Options{
		Surveys:  surveys.NewService(repo, logger),
		Symptoms: symptoms.NewService(repo, logger),
		Logger:   logger,
	}

	var err error
	if opts.Profile, err = loadProfile(ctx, opts.Surveys, opts.Symptoms); err != nil {
		return opts, err
	}

	svc, err := newInsights(ctx, repo)
	if err != nil {
		logger.Warn("AI insights disabled", zap.Error(err))
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "AI insights unavailable: %v\n", err)
		return opts, nil
	}
	opts.Insights = svc
	return opts, nil
}
