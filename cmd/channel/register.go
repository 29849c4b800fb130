package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alutalk/channel/internal/biz/domain"
	"github.com/alutalk/channel/internal/data"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the channel with the hub",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateRegistration(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		hub := data.NewHubRepo(cfg.Hub.URL, cfg.Hub.AuthKey)
		info := domain.ChannelInfo{
			Name:          cfg.Channel.Name,
			Endpoint:      cfg.Channel.Endpoint,
			AuthKey:       cfg.Channel.AuthKey,
			TypeOfService: cfg.Channel.TypeOfService,
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := hub.Register(ctx, info); err != nil {
			return fmt.Errorf("creating channel: %w", err)
		}

		fmt.Printf("Registered %q at %s\n", info.Name, info.Endpoint)
		return nil
	},
}
