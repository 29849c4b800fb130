package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"

	"github.com/alutalk/channel/internal/biz/domain"
)

// DefaultAgentSender is used when a post does not name its sender
const DefaultAgentSender = "Agent"

// Tools exposes the channel API as MCP tools
type Tools struct {
	client *Client
	logger *slog.Logger
	now    func() time.Time
}

// NewTools creates the channel tool set
func NewTools(client *Client, logger *slog.Logger) *Tools {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tools{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// NewServer creates an MCP server with all channel tools registered
func NewServer(tools *Tools, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "channel-tools",
		Version: version,
	}, nil)
	tools.Register(server)
	return server
}

// Register registers all channel tools on server
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_get_messages",
		Description: "Get the most recent messages of the channel. Messages older than the retention window are not returned.",
	}, t.handleGetMessages)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_post_message",
		Description: "Post a message to the channel. Off-topic messages are replaced by a notice and swear words are masked. Start the content with /assistant to get a reply from the channel chatbot.",
	}, t.handlePostMessage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_health",
		Description: "Check that the channel is reachable and return its name.",
	}, t.handleHealth)
}

// ChannelMessage is a message as returned to the agent
type ChannelMessage struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// GetMessagesInput specifies how many messages to retrieve
type GetMessagesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of messages to retrieve (default 20)"`
}

// GetMessagesOutput contains recent messages
type GetMessagesOutput struct {
	Messages []ChannelMessage `json:"messages"`
	Error    string           `json:"error,omitempty"`
}

func (t *Tools) handleGetMessages(ctx context.Context, req *mcp.CallToolRequest, input GetMessagesInput) (*mcp.CallToolResult, GetMessagesOutput, error) {
	messages, err := t.client.GetMessages(ctx)
	if err != nil {
		t.logger.Error("failed to get messages", "error", err)
		return nil, GetMessagesOutput{Messages: []ChannelMessage{}, Error: err.Error()}, nil
	}

	// The listing always starts with the welcome text
	if len(messages) > 0 && messages[0].Sender == domain.ServerSender {
		messages = messages[1:]
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	return nil, GetMessagesOutput{
		Messages: lo.Map(messages, func(m domain.Message, _ int) ChannelMessage {
			return ChannelMessage{Sender: m.Sender, Content: m.Content, Timestamp: m.Timestamp}
		}),
	}, nil
}

// PostMessageInput is the input for channel_post_message
type PostMessageInput struct {
	Content string `json:"content" jsonschema:"The message content to post"`
	Sender  string `json:"sender,omitempty" jsonschema:"Display name of the sender (default Agent)"`
}

// PostMessageOutput is the output for channel_post_message
type PostMessageOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (t *Tools) handlePostMessage(ctx context.Context, req *mcp.CallToolRequest, input PostMessageInput) (*mcp.CallToolResult, PostMessageOutput, error) {
	if input.Content == "" {
		return nil, PostMessageOutput{Success: false, Error: "content is required"}, nil
	}

	sender := input.Sender
	if sender == "" {
		sender = DefaultAgentSender
	}

	msg := domain.Message{
		Content:   input.Content,
		Sender:    sender,
		Timestamp: domain.FormatTimestamp(t.now()),
	}
	if err := t.client.PostMessage(ctx, msg); err != nil {
		t.logger.Error("failed to post message", "error", err)
		return nil, PostMessageOutput{Success: false, Error: err.Error()}, nil
	}

	return nil, PostMessageOutput{Success: true}, nil
}

// HealthInput is empty - no input needed
type HealthInput struct{}

// HealthOutput contains the channel name
type HealthOutput struct {
	Name  string `json:"name,omitempty"`
	Error string `json:"error,omitempty"`
}

func (t *Tools) handleHealth(ctx context.Context, req *mcp.CallToolRequest, input HealthInput) (*mcp.CallToolResult, HealthOutput, error) {
	name, err := t.client.Health(ctx)
	if err != nil {
		return nil, HealthOutput{Error: err.Error()}, nil
	}
	return nil, HealthOutput{Name: name}, nil
}
