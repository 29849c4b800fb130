package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"github.com/alutalk/channel/internal/logging"
	"github.com/alutalk/channel/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const version = "v1.0.0"

// config is what the MCP bridge needs to reach the channel API
type config struct {
	ChannelURL string `env:"CHANNEL_URL,default=http://127.0.0.1:5001"`
	AuthKey    string `env:"CHANNEL_AUTHKEY"`
	LogLevel   string `env:"LOG_LEVEL,default=info"`
}

// This MCP server speaks stdio to the agent and relays tool calls to the channel HTTP API.
func main() {
	_ = godotenv.Load()

	var cfg config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}
	if cfg.AuthKey == "" {
		fmt.Fprintln(os.Stderr, "config error: CHANNEL_AUTHKEY is required")
		os.Exit(2)
	}

	logger := logging.New(cfg.LogLevel).With("component", "channel-mcp")

	tools := mcp.NewTools(mcp.NewClient(cfg.ChannelURL, cfg.AuthKey), logger)
	server := mcp.NewServer(tools, version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("serving channel tools over stdio", "channel", cfg.ChannelURL)
	if err := server.Run(ctx, &sdk.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
