package research

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/lakefield/deepresearch/pkg/provider"
	"github.com/lakefield/deepresearch/pkg/tool"
)

var _ tool.Provider = (*Client)(nil)

const Name = "deep_research"

type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

const (
	DefaultTimeout      = 30 * time.Minute
	DefaultPollInterval = 5 * time.Second
)

// Client performs deep research by delegating to a registered provider.
// It holds no per-invocation state; the registry is snapshotted at the
// start of each call.
type Client struct {
	registry *provider.Registry

	// provider is the configured default choice; empty or "auto"
	// selects by priority
	provider string

	timeout      time.Duration
	pollInterval time.Duration
}

type Option func(*Client)

func WithProvider(name string) Option {
	return func(c *Client) {
		c.provider = name
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
	}
}

func New(registry *provider.Registry, options ...Option) (*Client, error) {
	c := &Client{
		registry: registry,

		timeout:      DefaultTimeout,
		pollInterval: DefaultPollInterval,
	}

	for _, option := range options {
		option(c)
	}

	if c.registry == nil {
		return nil, errors.New("provider registry is required")
	}

	return c, nil
}

func (c *Client) Tools(ctx context.Context) ([]tool.Tool, error) {
	return []tool.Tool{
		{
			Name: Name,
			Description: "Perform deep, comprehensive research on a topic using AI models with " +
				"web search and extended reasoning capabilities. Use this when the user needs " +
				"thorough research on a complex topic, multiple sources and perspectives are " +
				"needed, the question requires extended reasoning, or web search would " +
				"significantly improve the answer quality. Research takes several minutes and " +
				"is resource-intensive, so confirm the refined query before proceeding.",

			Parameters: map[string]any{
				"type": "object",

				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "The research question or topic to investigate thoroughly",
					},
					"complexity": map[string]any{
						"type":        "string",
						"enum":        []string{"low", "medium", "high"},
						"description": "Hint about task complexity to help with model selection",
						"default":     "medium",
					},
					"enable_code_interpreter": map[string]any{
						"type":        "boolean",
						"description": "Enable code execution for data analysis (OpenAI only)",
						"default":     false,
					},
					"provider": map[string]any{
						"type":        "string",
						"enum":        []string{"openai", "anthropic", "auto"},
						"description": "Provider to use, or auto to select by priority",
						"default":     "auto",
					},
				},

				"required": []string{"query"},
			},
		},
	}, nil
}

// Execute runs a research request end to end. Research failures are
// returned inside tool.Result; the error return is reserved for an
// unknown tool name.
func (c *Client) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	if name != Name {
		return nil, tool.ErrInvalidTool
	}

	query, _ := parameters["query"].(string)

	if strings.TrimSpace(query) == "" {
		return tool.Failure("query is required"), nil
	}

	complexity := parseComplexity(parameters["complexity"])
	codeInterpreter, _ := parameters["enable_code_interpreter"].(bool)

	preference, _ := parameters["provider"].(string)

	if preference == "" {
		preference = c.provider
	}

	handle, err := selectProvider(c.registry.Snapshot(), preference)

	if err != nil {
		return tool.Failure(err.Error()), nil
	}

	slog.InfoContext(ctx, "starting deep research",
		"provider", handle.Name,
		"complexity", string(complexity),
	)

	var messages []provider.Message
	var options *provider.CompleteOptions

	switch handle.Name {
	case ProviderOpenAI:
		messages, options = c.buildOpenAIRequest(query, complexity, codeInterpreter)

	case ProviderAnthropic:
		messages, options = c.buildAnthropicRequest(query, complexity)

	default:
		return tool.Failure("unknown provider type: " + handle.Name), nil
	}

	completion, err := handle.Completer.Complete(ctx, messages, options)

	if err != nil {
		slog.ErrorContext(ctx, "deep research failed",
			"provider", handle.Name,
			"error", err,
		)

		return tool.Failure(err.Error()), nil
	}

	var output string

	switch handle.Name {
	case ProviderAnthropic:
		output = extractText(completion)

		if citations := formatCitations(completion.WebSearchResults); citations != "" {
			output += "\n\n## Sources\n" + citations
		}

	default:
		output = extractWithStatus(completion)
	}

	return tool.Result{
		Success: true,
		Output:  output,

		Metadata: map[string]string{
			"provider":   handle.Name,
			"complexity": string(complexity),
		},
	}, nil
}

func parseComplexity(value any) Complexity {
	val, _ := value.(string)

	switch Complexity(val) {
	case ComplexityLow:
		return ComplexityLow
	case ComplexityHigh:
		return ComplexityHigh
	}

	return ComplexityMedium
}
