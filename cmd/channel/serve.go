package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alutalk/channel/internal/api"
	"github.com/alutalk/channel/internal/biz"
	"github.com/alutalk/channel/internal/data"
	"github.com/alutalk/channel/internal/service"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the channel HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		maskChar, err := cfg.Moderation.MaskRune()
		if err != nil {
			return err
		}

		// Initialize repository layer
		repos, err := data.NewRepositories(cfg.ToDataOptions(), logger)
		if err != nil {
			return fmt.Errorf("failed to create repositories: %w", err)
		}
		defer repos.Close()

		logger.Info("message store ready", "file", cfg.Store.File, "retention", cfg.Store.RetentionWindow)
		if repos.Audit != nil {
			logger.Info("moderation audit log enabled", "db", cfg.Moderation.AuditDBPath)
		}

		// Initialize usecase layer
		prompts := cfg.Prompts.ToPromptConfig()
		ucs := biz.NewUsecases(biz.Repos{
			Message:  repos.Message,
			Oracle:   repos.Oracle,
			WordList: repos.WordList,
			Audit:    repos.Audit,
		}, biz.Settings{
			Prompts:         prompts,
			MaxAttempts:     cfg.Moderation.MaxAttempts,
			MaskChar:        maskChar,
			RetentionWindow: cfg.Store.RetentionWindow,
		}, logger)

		apiServer := api.NewServer(ucs.Moderation, ucs.Retention, api.Options{
			ChannelName: cfg.Channel.Name,
			AuthKey:     cfg.Channel.AuthKey,
			Welcome:     prompts.Welcome,
			Port:        cfg.Server.Port,
		}, logger)

		// Graceful shutdown
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scheduler := service.NewRetentionScheduler(ucs.Retention, cfg.Store.SweepInterval, logger)
		scheduler.Start(ctx)
		defer scheduler.Stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- apiServer.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Stop(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 5001, "listen port (overrides PORT)")
}
