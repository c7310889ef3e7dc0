package provider

import (
	"context"
	"strings"
	"time"
)

type Completer interface {
	Complete(ctx context.Context, messages []Message, options *CompleteOptions) (*Completion, error)
}

type Message struct {
	Role MessageRole

	Content []Content
}

func SystemMessage(content string) Message {
	return Message{
		Role: MessageRoleSystem,

		Content: []Content{
			{
				Text: content,
			},
		},
	}
}

func UserMessage(content string) Message {
	return Message{
		Role: MessageRoleUser,

		Content: []Content{
			{
				Text: content,
			},
		},
	}
}

func (m Message) Text() string {
	var parts []string

	for _, c := range m.Content {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}

	return strings.Join(parts, "\n\n")
}

type Content struct {
	Text string
}

type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type CompleteOptions struct {
	// Model overrides the client's configured model for this call
	Model string

	Tools []NativeTool

	Effort Effort

	MaxTokens    *int
	MaxToolCalls *int

	// Background requests a provider-side long-running job. The client
	// polls with PollInterval until the job finishes or Timeout expires.
	Background   bool
	PollInterval time.Duration
	Timeout      time.Duration
}

// NativeTool names a capability executed by the provider itself, as
// opposed to a function tool executed by the caller.
type NativeTool string

const (
	NativeToolWebSearch       NativeTool = "web_search"
	NativeToolCodeInterpreter NativeTool = "code_interpreter"
)

type Effort string

const (
	EffortMinimal Effort = "minimal"
	EffortLow     Effort = "low"
	EffortMedium  Effort = "medium"
	EffortHigh    Effort = "high"
)

// Completion is the normalized provider response. All result-bearing
// fields are optional; consumers match on whichever are populated.
type Completion struct {
	ID    string
	Model string

	// OutputText is the provider-reported final answer, when the
	// provider distinguishes finished output from raw content.
	OutputText string

	// Text is the accumulated plain text of the response.
	Text string

	// Content holds the raw typed blocks, including reasoning.
	Content []ContentBlock

	Metadata map[string]string

	WebSearchResults []WebSearchResult

	Usage *Usage
}

type ContentBlock struct {
	Type ContentBlockType

	Text string
}

type ContentBlockType string

const (
	ContentBlockTypeText      ContentBlockType = "text"
	ContentBlockTypeReasoning ContentBlockType = "reasoning"
)

// Metadata keys set by clients that can report truncated responses.
const (
	MetadataStatus       = "status"
	MetadataStatusReason = "status_reason"
)

const StatusIncomplete = "incomplete"

type WebSearchResult struct {
	Title string
	URL   string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}
