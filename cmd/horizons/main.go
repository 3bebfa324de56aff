package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/horizons-app/horizons/internal/api"
	"github.com/horizons-app/horizons/internal/brain"
	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/chat"
	"github.com/horizons-app/horizons/internal/config"
	"github.com/horizons-app/horizons/internal/counselor"
	"github.com/horizons-app/horizons/internal/logging"
	"github.com/horizons-app/horizons/internal/models"
	"github.com/horizons-app/horizons/internal/remote"
	"github.com/horizons-app/horizons/internal/tui"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "horizons",
	Short: "Horizons - vocational discovery through career simulations",
	Long: `Horizons lets students try careers before choosing them.

Play the Model UN simulator or the Design Lab, talk to the Socrat IA
counselor and browse career sheets. Progress is kept on a local profile.

Run without arguments to start the interactive app.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		models.SaveDir = cfg.SaveDir
		return nil
	},
	RunE: runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $HORIZONS_CONFIG or ./horizons.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd, healthCmd, profilesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// The terminal belongs to the UI, so logs only go to a file.
	logger, err := logging.New(cfg.LogFile, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	responder, closeChat, err := newResponder(ctx, cat, logger)
	if err != nil {
		return err
	}
	defer closeChat()

	deps := tui.Deps{
		Catalog: cat,
		Chat:    responder,
		GuestID: cfg.UserID,
		Log:     logger,
	}
	if cfg.APIURL != "" {
		deps.API = api.NewClient(cfg.APIURL, clientOptions(logger)...)
	}
	logStartupProbe(ctx, logger)

	if err := tui.Run(deps); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// newResponder picks who answers the chat: BRAIN, or Gemini when BRAIN is
// disabled and a key is set.
func newResponder(ctx context.Context, cat *catalog.Catalog, logger *zap.Logger) (chat.Responder, func(), error) {
	if cfg.UseGemini() {
		titles := make([]string, 0, len(cat.Careers))
		for _, c := range cat.Careers {
			titles = append(titles, c.Title)
		}
		c, err := counselor.New(ctx, cfg.GeminiAPIKey, titles, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("create counselor: %w", err)
		}
		logger.Info("chat backend", zap.String("backend", "gemini"))
		return c, func() { _ = c.Close() }, nil
	}

	url := cfg.BrainURL
	if url == "" {
		logger.Warn("brain_url is empty and no Gemini key is set, using the default BRAIN address")
		url = brain.DefaultURL
	}
	logger.Info("chat backend", zap.String("backend", "brain"), zap.String("url", url))
	return brain.NewClient(url, clientOptions(logger)...), func() {}, nil
}

func clientOptions(logger *zap.Logger) []remote.Option {
	return []remote.Option{remote.WithTimeout(cfg.HTTPTimeout), remote.WithLogger(logger)}
}
