package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/horizons-app/horizons/internal/api"
	"github.com/horizons-app/horizons/internal/brain"
	"github.com/horizons-app/horizons/internal/remote"
)

// startupProbeTimeout bounds the probes run before the UI starts.
const startupProbeTimeout = 3 * time.Second

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the account API and BRAIN are reachable",
	RunE:  runHealth,
}

type probeResult struct {
	api, brain string
}

// probe checks the account API and BRAIN concurrently. Both probes always
// finish so each result reports its own status.
func probe(ctx context.Context, opts ...remote.Option) (probeResult, error) {
	var (
		res probeResult
		g   errgroup.Group
	)
	g.Go(func() error {
		if cfg.APIURL == "" {
			res.api = "disabled"
			return nil
		}
		st, err := api.NewClient(cfg.APIURL, opts...).HealthCheck(ctx)
		if err != nil {
			res.api = api.UserMessage(err)
			return fmt.Errorf("api: %w", err)
		}
		res.api = st["status"]
		return nil
	})
	g.Go(func() error {
		if cfg.BrainURL == "" {
			res.brain = "disabled"
			return nil
		}
		if err := brain.NewClient(cfg.BrainURL, opts...).Ping(ctx); err != nil {
			res.brain = err.Error()
			return err
		}
		res.brain = "ok"
		return nil
	})
	err := g.Wait()
	return res, err
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout)
	defer cancel()

	res, err := probe(ctx, remote.WithTimeout(cfg.HTTPTimeout))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "api   %-30s %s\n", cfg.APIURL, res.api)
	fmt.Fprintf(out, "brain %-30s %s\n", cfg.BrainURL, res.brain)
	return err
}

// logStartupProbe reports unreachable services before the UI takes over
// the terminal. Failures are not fatal: the app still runs as a guest.
func logStartupProbe(ctx context.Context, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, startupProbeTimeout)
	defer cancel()

	res, err := probe(ctx, remote.WithLogger(logger))
	fields := []zap.Field{zap.String("api", res.api), zap.String("brain", res.brain)}
	if err != nil {
		logger.Warn("service probe failed", append(fields, zap.Error(err))...)
		return
	}
	logger.Info("services reachable", fields...)
}
