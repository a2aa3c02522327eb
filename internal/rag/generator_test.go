package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gemini-rag/pkg/logger"
)

// fakeLLM records the system directive and prompt it received.
type fakeLLM struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
}

func (f *fakeLLM) Generate(_ context.Context, system, prompt string) (string, error) {
	f.lastSystem = system
	f.lastPrompt = prompt
	return f.response, f.err
}

func TestGenerateFailsWithoutClient(t *testing.T) {
	gen := NewAnswerGenerator(nil, time.Second, logger.New("test"))

	if gen.Ready() {
		t.Error("generator without a client reports Ready")
	}
	_, err := gen.Generate(context.Background(), "q", []string{"c"})
	if !errors.Is(err, ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestGenerateDuplicatesGroundingConstraint(t *testing.T) {
	llm := &fakeLLM{response: "  an answer  \n"}
	gen := NewAnswerGenerator(llm, time.Second, logger.New("test"))

	answer, err := gen.Generate(context.Background(), "the question", []string{"ctx one", "ctx two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The constraint must appear both as the system directive and inline.
	if llm.lastSystem != systemInstruction {
		t.Errorf("system directive %q, expected %q", llm.lastSystem, systemInstruction)
	}
	if !strings.Contains(llm.lastPrompt, "Use ONLY the information provided in the context below") {
		t.Errorf("prompt is missing the inline grounding instruction:\n%s", llm.lastPrompt)
	}

	if answer != "an answer" {
		t.Errorf("expected trimmed answer, got %q", answer)
	}
}

func TestBuildPromptLayout(t *testing.T) {
	prompt := buildPrompt("What is X?", []string{"alpha", "beta", "gamma"})

	if !strings.Contains(prompt, "alpha"+contextSeparator+"beta"+contextSeparator+"gamma") {
		t.Errorf("contexts are not joined by the separator:\n%s", prompt)
	}
	if !strings.Contains(prompt, "User Query:\nWhat is X?") {
		t.Errorf("prompt does not carry the verbatim query:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, "Answer:") {
		t.Errorf("prompt does not end with the answer cue:\n%s", prompt)
	}
	if got := strings.Count(prompt, contextSeparator); got != 2 {
		t.Errorf("expected 2 separators for 3 contexts, got %d", got)
	}
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("deadline exceeded")}
	gen := NewAnswerGenerator(llm, time.Second, logger.New("test"))

	_, err := gen.Generate(context.Background(), "q", []string{"c"})
	if err == nil || !strings.Contains(err.Error(), "deadline exceeded") {
		t.Fatalf("expected the API error to surface, got %v", err)
	}
}
