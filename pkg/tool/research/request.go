package research

import (
	"github.com/lakefield/deepresearch/pkg/provider"
)

const (
	openAIModelHigh    = "o3-deep-research"
	openAIModelDefault = "o4-mini-deep-research"

	anthropicModel = "claude-sonnet-4-20250514"
)

// Deep research models spend tokens on reasoning before any visible
// output is produced. Budgets below that leave responses truncated
// with empty content.
const (
	openAIBudgetHigh    = 16000
	openAIBudgetDefault = 12000

	anthropicBudget = 8192
)

// maxToolCalls bounds provider-side searching so it cannot consume the
// whole token budget.
const maxToolCalls = 20

func (c *Client) buildOpenAIRequest(query string, complexity Complexity, codeInterpreter bool) ([]provider.Message, *provider.CompleteOptions) {
	model := openAIModelDefault
	budget := openAIBudgetDefault

	// o3-deep-research accepts only medium effort, o4-mini-deep-research
	// only low
	effort := provider.EffortLow

	if complexity == ComplexityHigh {
		model = openAIModelHigh
		budget = openAIBudgetHigh

		effort = provider.EffortMedium
	}

	tools := []provider.NativeTool{
		provider.NativeToolWebSearch,
	}

	if codeInterpreter {
		tools = append(tools, provider.NativeToolCodeInterpreter)
	}

	messages := []provider.Message{
		provider.UserMessage(researchPrompt(query, false)),
	}

	calls := maxToolCalls

	options := &provider.CompleteOptions{
		Model: model,

		Tools:  tools,
		Effort: effort,

		MaxTokens:    &budget,
		MaxToolCalls: &calls,

		Background:   true,
		PollInterval: c.pollInterval,
		Timeout:      c.timeout,
	}

	return messages, options
}

// buildAnthropicRequest uses one model regardless of the complexity
// tier; the tier is accepted and recorded in result metadata only.
func (c *Client) buildAnthropicRequest(query string, complexity Complexity) ([]provider.Message, *provider.CompleteOptions) {
	budget := anthropicBudget

	messages := []provider.Message{
		provider.UserMessage(researchPrompt(query, true)),
	}

	options := &provider.CompleteOptions{
		Model: anthropicModel,

		Tools: []provider.NativeTool{
			provider.NativeToolWebSearch,
		},

		MaxTokens: &budget,

		Timeout: c.timeout,
	}

	return messages, options
}

func researchPrompt(query string, citeSources bool) string {
	if citeSources {
		return "Please conduct thorough research on the following topic and provide a " +
			"comprehensive analysis. Use web search to gather current information and " +
			"cite your sources.\n\n" + query
	}

	return "Please conduct thorough research on the following topic and provide a " +
		"comprehensive analysis:\n\n" + query
}
