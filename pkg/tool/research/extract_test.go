package research

import (
	"strings"
	"testing"

	"github.com/lakefield/deepresearch/pkg/provider"

	"github.com/stretchr/testify/require"
)

func TestExtractStructured(t *testing.T) {
	t.Run("output text wins", func(t *testing.T) {
		completion := &provider.Completion{
			OutputText: "final answer",
			Text:       "raw text",
		}

		require.Equal(t, "final answer", extractStructured(completion))
	})

	t.Run("text over blocks", func(t *testing.T) {
		completion := &provider.Completion{
			Text: "raw text",

			Content: []provider.ContentBlock{
				{Type: provider.ContentBlockTypeText, Text: "block"},
			},
		}

		require.Equal(t, "raw text", extractStructured(completion))
	})

	t.Run("falls back to blocks", func(t *testing.T) {
		completion := &provider.Completion{
			Content: []provider.ContentBlock{
				{Type: provider.ContentBlockTypeText, Text: "Paris is..."},
			},
		}

		require.Equal(t, "Paris is...", extractStructured(completion))
	})

	t.Run("joins blocks with newlines", func(t *testing.T) {
		completion := &provider.Completion{
			Content: []provider.ContentBlock{
				{Type: provider.ContentBlockTypeText, Text: "one"},
				{Type: provider.ContentBlockTypeReasoning, Text: "ignored"},
				{Type: provider.ContentBlockTypeText, Text: "two"},
			},
		}

		require.Equal(t, "one\ntwo", extractStructured(completion))
	})

	t.Run("empty when nothing structured", func(t *testing.T) {
		require.Empty(t, extractStructured(&provider.Completion{ID: "resp_1"}))
	})
}

func TestExtractTextLastResort(t *testing.T) {
	completion := &provider.Completion{ID: "resp_1"}

	text := extractText(completion)
	require.NotEmpty(t, text)
	require.Contains(t, text, "resp_1")
}

func TestExtractWithStatusComplete(t *testing.T) {
	completion := &provider.Completion{
		OutputText: "all good",
	}

	require.Equal(t, "all good", extractWithStatus(completion))
}

func TestExtractWithStatusTruncated(t *testing.T) {
	completion := &provider.Completion{
		OutputText: "partial analysis",

		Metadata: map[string]string{
			provider.MetadataStatus:       provider.StatusIncomplete,
			provider.MetadataStatusReason: "max_output_tokens",
		},
	}

	text := extractWithStatus(completion)
	require.True(t, strings.HasPrefix(text, "partial analysis"))
	require.Contains(t, text, "truncated (max_output_tokens)")
}

func TestExtractWithStatusSalvage(t *testing.T) {
	reasoning := strings.Repeat("reasoning ", 15) // 150 chars

	completion := &provider.Completion{
		Metadata: map[string]string{
			provider.MetadataStatus:       provider.StatusIncomplete,
			provider.MetadataStatusReason: "max_tokens",
		},

		Content: []provider.ContentBlock{
			{Type: provider.ContentBlockTypeReasoning, Text: reasoning},
		},
	}

	text := extractWithStatus(completion)
	require.NotEmpty(t, text)
	require.Contains(t, text, reasoning)
	require.Contains(t, text, "output limits")
}

func TestExtractWithStatusSalvageSkipsShortBlocks(t *testing.T) {
	completion := &provider.Completion{
		Metadata: map[string]string{
			provider.MetadataStatus:       provider.StatusIncomplete,
			provider.MetadataStatusReason: "max_tokens",
		},

		Content: []provider.ContentBlock{
			{Type: provider.ContentBlockTypeReasoning, Text: "too short"},
		},
	}

	text := extractWithStatus(completion)
	require.Contains(t, text, "incomplete (max_tokens)")
	require.Contains(t, text, "no content could be extracted")
}

func TestSalvageReasoningTail(t *testing.T) {
	long := strings.Repeat("a", 500) + strings.Repeat("b", 2000)

	completion := &provider.Completion{
		Content: []provider.ContentBlock{
			{Type: provider.ContentBlockTypeReasoning, Text: long},
		},
	}

	salvaged := salvageReasoning(completion)
	require.Len(t, salvaged, salvageTailLength)
	require.Equal(t, strings.Repeat("b", 2000), salvaged)
}

func TestSalvageReasoningPrefersLast(t *testing.T) {
	first := strings.Repeat("first ", 30)
	last := strings.Repeat("last ", 30)

	completion := &provider.Completion{
		Content: []provider.ContentBlock{
			{Type: provider.ContentBlockTypeReasoning, Text: first},
			{Type: provider.ContentBlockTypeReasoning, Text: last},
		},
	}

	require.Equal(t, last, salvageReasoning(completion))
}

func TestFormatCitations(t *testing.T) {
	citations := formatCitations([]provider.WebSearchResult{
		{Title: "A", URL: "http://a"},
		{Title: "B"},
	})

	require.Equal(t, "1. [A](http://a)\n2. B", citations)
}

func TestFormatCitationsEmpty(t *testing.T) {
	require.Empty(t, formatCitations(nil))
}

func TestFormatCitationsMissingTitle(t *testing.T) {
	citations := formatCitations([]provider.WebSearchResult{
		{URL: "http://a"},
	})

	require.Equal(t, "1. [Unknown](http://a)", citations)
}
