package openai

import (
	"fmt"
	"strings"
)

// rewriteSystemPrompt instructs the model to expand a search query into
// multiple phrasings. Kept close to the multi-query retrieval prompt used
// by LangChain so rewrite quality is comparable across stacks.
const rewriteSystemPrompt = `You are an AI language model assistant. Your task is to generate ` +
	`alternative versions of the user's question to retrieve relevant documents from ` +
	`a vector database. By generating multiple perspectives on the question, you help ` +
	`overcome some of the limitations of distance-based similarity search. ` +
	`Answer in the same language as the question. ` +
	`Provide only the alternative questions, one per line, with no numbering or commentary.`

// buildRewritePrompt renders the user message for a rewrite request.
func buildRewritePrompt(query string, count int) string {
	return fmt.Sprintf("Generate %d alternative versions of the following question:\n\n%s", count, query)
}

// parseRewriteLines extracts up to count rewrites from a model response.
// Models ignore formatting instructions often enough that numbering and
// bullet markers are stripped rather than treated as errors.
func parseRewriteLines(response string, count int) []string {
	lines := strings.Split(response, "\n")
	rewrites := make([]string, 0, count)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = trimListMarker(line)
		if line == "" {
			continue
		}
		rewrites = append(rewrites, line)
		if len(rewrites) == count {
			break
		}
	}

	return rewrites
}

// trimListMarker removes a leading bullet or "1." / "1)" style ordinal.
func trimListMarker(line string) string {
	line = strings.TrimLeft(line, "-*• \t")

	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		line = line[i+1:]
	}

	return strings.TrimSpace(line)
}
