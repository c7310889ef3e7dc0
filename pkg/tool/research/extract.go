package research

import (
	"fmt"
	"strings"

	"github.com/lakefield/deepresearch/pkg/provider"
)

// salvageMinLength skips trivial reasoning blocks; salvageTailLength
// keeps the end of a long block, where the reasoning is most
// synthesized.
const (
	salvageMinLength  = 100
	salvageTailLength = 2000
)

// extractText returns the best-effort text of a completion: the
// provider-reported final answer, then the accumulated text, then the
// joined text blocks, then a stringified dump as last resort.
func extractText(completion *provider.Completion) string {
	if text := extractStructured(completion); text != "" {
		return text
	}

	return fmt.Sprintf("%+v", *completion)
}

// extractStructured is the fallback chain without the last resort. An
// empty result means no structured field held any text.
func extractStructured(completion *provider.Completion) string {
	if completion.OutputText != "" {
		return completion.OutputText
	}

	if completion.Text != "" {
		return completion.Text
	}

	var texts []string

	for _, block := range completion.Content {
		if block.Type == provider.ContentBlockTypeText && block.Text != "" {
			texts = append(texts, block.Text)
		}
	}

	return strings.Join(texts, "\n")
}

// extractWithStatus extracts text while handling truncated responses.
// A truncated response with content succeeds with a notice appended; a
// truncated response without content falls back to reasoning blocks
// before giving up with an explicit message.
func extractWithStatus(completion *provider.Completion) string {
	incomplete := completion.Metadata[provider.MetadataStatus] == provider.StatusIncomplete

	reason := completion.Metadata[provider.MetadataStatusReason]

	if reason == "" {
		reason = "unknown"
	}

	if text := extractStructured(completion); text != "" {
		if incomplete {
			text += fmt.Sprintf(
				"\n\n---\n**Note:** This research response was truncated (%s). "+
					"The analysis above may be partial. "+
					"Consider refining your query for a more focused response.",
				reason,
			)
		}

		return text
	}

	if incomplete {
		if salvaged := salvageReasoning(completion); salvaged != "" {
			return fmt.Sprintf(
				"**Note:** Research hit output limits before producing final content. "+
					"Below is a summary extracted from the reasoning process:\n\n%s\n\n"+
					"Consider refining your query for a complete response.",
				salvaged,
			)
		}

		return fmt.Sprintf(
			"Research was incomplete (%s) and no content could be extracted. "+
				"Try a more focused query or lower complexity setting.",
			reason,
		)
	}

	return fmt.Sprintf("%+v", *completion)
}

// salvageReasoning returns the tail of the most recent substantial
// reasoning block, or empty when none qualifies.
func salvageReasoning(completion *provider.Completion) string {
	var result string

	for _, block := range completion.Content {
		if block.Type != provider.ContentBlockTypeReasoning {
			continue
		}

		if len(block.Text) <= salvageMinLength {
			continue
		}

		text := block.Text

		if len(text) > salvageTailLength {
			text = text[len(text)-salvageTailLength:]
		}

		result = text
	}

	return result
}

// formatCitations renders web search results as a numbered markdown
// list.
func formatCitations(results []provider.WebSearchResult) string {
	var lines []string

	for i, result := range results {
		title := result.Title

		if title == "" {
			title = "Unknown"
		}

		if result.URL != "" {
			lines = append(lines, fmt.Sprintf("%d. [%s](%s)", i+1, title, result.URL))
			continue
		}

		lines = append(lines, fmt.Sprintf("%d. %s", i+1, title))
	}

	return strings.Join(lines, "\n")
}
