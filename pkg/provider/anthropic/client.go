package anthropic

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/lakefield/deepresearch/pkg/provider"

	"github.com/anthropics/anthropic-sdk-go"
)

var _ provider.Completer = (*Client)(nil)

type Client struct {
	*Config
	messages anthropic.MessageService
}

func New(token string, options ...Option) (*Client, error) {
	cfg := &Config{
		token: token,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Client{
		Config:   cfg,
		messages: anthropic.NewMessageService(cfg.Options()...),
	}, nil
}

func (c *Client) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	req, err := c.convertRequest(messages, options)

	if err != nil {
		return nil, err
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	message, err := c.messages.New(ctx, *req)

	if err != nil {
		return nil, err
	}

	return convertCompletion(message), nil
}

func (c *Client) convertRequest(messages []provider.Message, options *provider.CompleteOptions) (*anthropic.MessageNewParams, error) {
	model := options.Model

	if model == "" {
		model = c.model
	}

	if model == "" {
		return nil, errors.New("model not configured")
	}

	maxTokens := 1024

	if options.MaxTokens != nil {
		maxTokens = *options.MaxTokens
	}

	req := &anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
	}

	for _, m := range messages {
		switch m.Role {
		case provider.MessageRoleSystem:
			req.System = append(req.System, anthropic.TextBlockParam{
				Text: m.Text(),
			})

		case provider.MessageRoleUser:
			req.Messages = append(req.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text())))

		case provider.MessageRoleAssistant:
			req.Messages = append(req.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text())))

		default:
			return nil, errors.New("unsupported message role: " + string(m.Role))
		}
	}

	if slices.Contains(options.Tools, provider.NativeToolWebSearch) {
		maxUses := 5

		if options.MaxToolCalls != nil {
			maxUses = *options.MaxToolCalls
		}

		req.Tools = append(req.Tools, anthropic.ToolUnionParam{
			OfWebSearchTool20250305: &anthropic.WebSearchTool20250305Param{
				MaxUses: anthropic.Int(int64(maxUses)),
			},
		})
	}

	return req, nil
}

func convertCompletion(message *anthropic.Message) *provider.Completion {
	result := &provider.Completion{
		ID:    message.ID,
		Model: string(message.Model),
	}

	var texts []string

	for _, block := range message.Content {
		switch block.Type {
		case "text":
			if block.Text != "" {
				texts = append(texts, block.Text)

				result.Content = append(result.Content, provider.ContentBlock{
					Type: provider.ContentBlockTypeText,
					Text: block.Text,
				})
			}

		case "thinking":
			if block.Thinking != "" {
				result.Content = append(result.Content, provider.ContentBlock{
					Type: provider.ContentBlockTypeReasoning,
					Text: block.Thinking,
				})
			}
		}

		for _, citation := range block.Citations {
			if citation.Title == "" && citation.URL == "" {
				continue
			}

			entry := provider.WebSearchResult{
				Title: citation.Title,
				URL:   citation.URL,
			}

			if !slices.Contains(result.WebSearchResults, entry) {
				result.WebSearchResults = append(result.WebSearchResults, entry)
			}
		}
	}

	result.Text = strings.Join(texts, "\n")

	if message.StopReason == anthropic.StopReasonMaxTokens {
		result.Metadata = map[string]string{
			provider.MetadataStatus:       provider.StatusIncomplete,
			provider.MetadataStatusReason: "max_tokens",
		}
	}

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		result.Usage = &provider.Usage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
		}
	}

	return result
}
