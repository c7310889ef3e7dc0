package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lakefield/deepresearch/pkg/provider"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

var _ provider.Completer = (*Client)(nil)

type Client struct {
	*Config
	responses responses.ResponseService
}

func New(token string, options ...Option) (*Client, error) {
	cfg := &Config{
		token: token,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Client{
		Config:    cfg,
		responses: responses.NewResponseService(cfg.Options()...),
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

	resp, err := c.responses.New(ctx, *req)

	if err != nil {
		return nil, convertError(err)
	}

	if options.Background {
		resp, err = c.await(ctx, resp, options.PollInterval)

		if err != nil {
			return nil, err
		}
	}

	if resp.Status == responses.ResponseStatusFailed {
		message := resp.Error.Message

		if message == "" {
			message = "response failed"
		}

		return nil, errors.New(message)
	}

	return convertCompletion(resp), nil
}

// await polls a background response until it leaves the queued or
// in-progress states. The deadline is enforced by ctx.
func (c *Client) await(ctx context.Context, resp *responses.Response, interval time.Duration) (*responses.Response, error) {
	if interval <= 0 {
		interval = 5 * time.Second
	}

	for resp.Status == responses.ResponseStatusQueued || resp.Status == responses.ResponseStatusInProgress {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-time.After(interval):
		}

		result, err := c.responses.Get(ctx, resp.ID, responses.ResponseGetParams{})

		if err != nil {
			return nil, convertError(err)
		}

		resp = result
	}

	return resp, nil
}

func (c *Client) convertRequest(messages []provider.Message, options *provider.CompleteOptions) (*responses.ResponseNewParams, error) {
	model := options.Model

	if model == "" {
		model = c.model
	}

	if model == "" {
		return nil, errors.New("model not configured")
	}

	input, err := convertInput(messages)

	if err != nil {
		return nil, err
	}

	req := &responses.ResponseNewParams{
		Model: model,

		Input: input,
		Tools: convertTools(options.Tools),
	}

	if val := convertInstructions(messages); val != "" {
		req.Instructions = openai.String(val)
	}

	if options.Background {
		req.Background = openai.Bool(true)
	}

	if options.MaxTokens != nil {
		req.MaxOutputTokens = openai.Int(int64(*options.MaxTokens))
	}

	if options.MaxToolCalls != nil {
		req.MaxToolCalls = openai.Int(int64(*options.MaxToolCalls))
	}

	switch options.Effort {
	case provider.EffortMinimal:
		req.Reasoning.Effort = responses.ReasoningEffortMinimal
	case provider.EffortLow:
		req.Reasoning.Effort = responses.ReasoningEffortLow
	case provider.EffortMedium:
		req.Reasoning.Effort = responses.ReasoningEffortMedium
	case provider.EffortHigh:
		req.Reasoning.Effort = responses.ReasoningEffortHigh
	}

	if options.Effort != "" {
		req.Reasoning.Summary = shared.ReasoningSummaryAuto
	}

	return req, nil
}

func convertInput(messages []provider.Message) (responses.ResponseNewParamsInputUnion, error) {
	var result []responses.ResponseInputItemUnionParam

	for _, m := range messages {
		switch m.Role {
		case provider.MessageRoleSystem:
			// handled as instructions

		case provider.MessageRoleUser:
			message := &responses.ResponseInputItemMessageParam{
				Role: string(responses.ResponseInputMessageItemRoleUser),
			}

			for _, c := range m.Content {
				if c.Text != "" {
					message.Content = append(message.Content, responses.ResponseInputContentUnionParam{
						OfInputText: &responses.ResponseInputTextParam{
							Text: c.Text,
						},
					})
				}
			}

			result = append(result, responses.ResponseInputItemUnionParam{
				OfInputMessage: message,
			})

		default:
			return responses.ResponseNewParamsInputUnion{}, errors.New("unsupported message role: " + string(m.Role))
		}
	}

	return responses.ResponseNewParamsInputUnion{
		OfInputItemList: result,
	}, nil
}

func convertInstructions(messages []provider.Message) string {
	var result []string

	for _, m := range messages {
		if m.Role == provider.MessageRoleSystem {
			for _, c := range m.Content {
				if c.Text != "" {
					result = append(result, c.Text)
				}
			}
		}
	}

	return strings.Join(result, "\n\n")
}

func convertTools(tools []provider.NativeTool) []responses.ToolUnionParam {
	var result []responses.ToolUnionParam

	for _, t := range tools {
		switch t {
		case provider.NativeToolWebSearch:
			result = append(result, responses.ToolUnionParam{
				OfWebSearch: &responses.WebSearchToolParam{
					Type: responses.WebSearchToolTypeWebSearch,
				},
			})

		case provider.NativeToolCodeInterpreter:
			result = append(result, responses.ToolUnionParam{
				OfCodeInterpreter: &responses.ToolCodeInterpreterParam{
					Container: responses.ToolCodeInterpreterContainerUnionParam{
						OfCodeInterpreterToolAuto: &responses.ToolCodeInterpreterContainerCodeInterpreterContainerAutoParam{},
					},
				},
			})
		}
	}

	return result
}

func convertCompletion(resp *responses.Response) *provider.Completion {
	result := &provider.Completion{
		ID:    resp.ID,
		Model: resp.Model,

		OutputText: resp.OutputText(),
	}

	var texts []string

	for _, item := range resp.Output {
		switch item := item.AsAny().(type) {
		case responses.ResponseOutputMessage:
			for _, c := range item.Content {
				if c.Text != "" {
					texts = append(texts, c.Text)

					result.Content = append(result.Content, provider.ContentBlock{
						Type: provider.ContentBlockTypeText,
						Text: c.Text,
					})
				}
			}

		case responses.ResponseReasoningItem:
			var parts []string

			for _, s := range item.Summary {
				if s.Text != "" {
					parts = append(parts, s.Text)
				}
			}

			if len(parts) > 0 {
				result.Content = append(result.Content, provider.ContentBlock{
					Type: provider.ContentBlockTypeReasoning,
					Text: strings.Join(parts, "\n\n"),
				})
			}
		}
	}

	result.Text = strings.Join(texts, "\n")

	if resp.Status == responses.ResponseStatusIncomplete {
		reason := string(resp.IncompleteDetails.Reason)

		if reason == "" {
			reason = "unknown"
		}

		result.Metadata = map[string]string{
			provider.MetadataStatus:       provider.StatusIncomplete,
			provider.MetadataStatusReason: reason,
		}
	}

	if resp.Usage.TotalTokens > 0 {
		result.Usage = &provider.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		}
	}

	return result
}
