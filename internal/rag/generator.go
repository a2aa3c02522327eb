package rag

import (
	"context"
	"strings"
	"time"

	"gemini-rag/internal/llm"
	"gemini-rag/pkg/logger"
)

// systemInstruction is additionally sent as the provider's system-level
// directive. The same constraint is repeated inline in the prompt on
// purpose: dropping either weakens grounding in practice.
const systemInstruction = "Answer the user query strictly based on the provided context."

// contextSeparator joins the retrieved chunks inside the prompt.
const contextSeparator = "\n---\n"

// AnswerGenerator formats a grounding prompt from a question and the
// retrieved chunk texts and calls the hosted generation API.
type AnswerGenerator struct {
	client  llm.LLM
	timeout time.Duration
	log     *logger.Logger
}

// NewAnswerGenerator creates an AnswerGenerator. client may be nil when no
// credential was configured; generation then fails per request with
// ErrGeneratorUnavailable.
func NewAnswerGenerator(client llm.LLM, timeout time.Duration, log *logger.Logger) *AnswerGenerator {
	return &AnswerGenerator{client: client, timeout: timeout, log: log}
}

// Ready reports whether the generation client was constructed.
func (g *AnswerGenerator) Ready() bool { return g.client != nil }

// Generate produces a grounded answer for the query from the given
// contexts. The call is synchronous and bounded by the generation budget;
// errors are surfaced, not retried.
func (g *AnswerGenerator) Generate(ctx context.Context, query string, contexts []string) (string, error) {
	if g.client == nil {
		return "", ErrGeneratorUnavailable
	}

	prompt := buildPrompt(query, contexts)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.log.WithPayload(map[string]interface{}{"contexts": len(contexts)}).
		Info("sending grounding prompt to generation API")
	answer, err := g.client.Generate(ctx, systemInstruction, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// buildPrompt lays out the fixed grounding instruction, the contexts
// joined by the separator, and the verbatim query.
func buildPrompt(query string, contexts []string) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful assistant. Use ONLY the information provided in the context below to answer the user's query.\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(strings.Join(contexts, contextSeparator))
	sb.WriteString("\n\nUser Query:\n")
	sb.WriteString(query)
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}
