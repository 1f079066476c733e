package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/prompts"
)

// ragPromptName is the published template this pipeline was designed around.
const ragPromptName = "rlm/rag-prompt"

// ragPromptTemplate mirrors the rlm/rag-prompt hub template, translated to
// Go template syntax. It instructs the model to answer strictly from the
// supplied context.
const ragPromptTemplate = `You are an assistant for question-answering tasks. ` +
	`Use the following pieces of retrieved context to answer the question. ` +
	`If you don't know the answer, just say that you don't know. ` +
	`Use three sentences maximum and keep the answer concise.
Question: {{.question}}
Context: {{.context}}
Answer:`

// PromptSource supplies the generation prompt template.
// The template must accept "context" and "question" variables.
type PromptSource interface {
	// Load returns the prompt template.
	// A malformed or unreachable template is an error; there is no fallback.
	Load(ctx context.Context) (prompts.PromptTemplate, error)
}

// StaticPrompt serves the built-in copy of the rag prompt.
type StaticPrompt struct{}

var _ PromptSource = (*StaticPrompt)(nil)

// NewStaticPrompt creates a prompt source with the embedded template.
func NewStaticPrompt() *StaticPrompt {
	return &StaticPrompt{}
}

// Load returns the embedded template.
func (s *StaticPrompt) Load(ctx context.Context) (prompts.PromptTemplate, error) {
	return prompts.NewPromptTemplate(ragPromptTemplate, []string{"context", "question"}), nil
}

// HubPrompt fetches a named template from the LangChain Hub on every load,
// so a template update upstream is picked up without redeploying.
type HubPrompt struct {
	name    string
	baseURL string
	client  *http.Client
}

var _ PromptSource = (*HubPrompt)(nil)

// defaultHubBaseURL is the public LangChain Hub API.
const defaultHubBaseURL = "https://api.hub.langchain.com"

// HubOption configures a HubPrompt.
type HubOption func(*HubPrompt)

// WithHubBaseURL overrides the hub endpoint, mainly for tests.
func WithHubBaseURL(baseURL string) HubOption {
	return func(h *HubPrompt) {
		h.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HubOption {
	return func(h *HubPrompt) {
		h.client = client
	}
}

// NewHubPrompt creates a prompt source that pulls the named template from
// the LangChain Hub. Use ragPromptName ("rlm/rag-prompt") for the template
// this pipeline was designed around.
func NewHubPrompt(name string, opts ...HubOption) *HubPrompt {
	if name == "" {
		name = ragPromptName
	}
	h := &HubPrompt{
		name:    name,
		baseURL: defaultHubBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// hubCommit is the subset of the hub commit payload we consume.
// The manifest is a serialized LangChain object whose shape depends on the
// prompt kind, so it is traversed dynamically.
type hubCommit struct {
	Manifest map[string]any `json:"manifest"`
}

// Load fetches and parses the template from the hub.
func (h *HubPrompt) Load(ctx context.Context) (prompts.PromptTemplate, error) {
	var empty prompts.PromptTemplate

	url := fmt.Sprintf("%s/commits/%s/latest", h.baseURL, h.name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return empty, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return empty, fmt.Errorf("%w: %w", ErrPromptUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return empty, fmt.Errorf("%w: %s returned status %d", ErrPromptUnavailable, h.name, resp.StatusCode)
	}

	var commit hubCommit
	if err := json.NewDecoder(resp.Body).Decode(&commit); err != nil {
		return empty, fmt.Errorf("%w: %w", ErrMalformedPrompt, err)
	}

	template, err := extractTemplate(commit.Manifest)
	if err != nil {
		return empty, err
	}

	return prompts.PromptTemplate{
		Template:       fstringToGoTemplate(template),
		InputVariables: []string{"context", "question"},
		TemplateFormat: prompts.TemplateFormatGoTemplate,
	}, nil
}

// extractTemplate digs the template string out of a serialized LangChain
// prompt manifest. Both plain prompts and single-message chat prompts are
// supported; anything else is malformed for our purposes.
func extractTemplate(manifest map[string]any) (string, error) {
	kwargs, ok := manifest["kwargs"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: manifest has no kwargs", ErrMalformedPrompt)
	}

	// Plain prompt template.
	if template, ok := kwargs["template"].(string); ok {
		return template, nil
	}

	// Chat prompt template: use the first message's inner prompt.
	messages, ok := kwargs["messages"].([]any)
	if !ok || len(messages) == 0 {
		return "", fmt.Errorf("%w: manifest has neither template nor messages", ErrMalformedPrompt)
	}
	message, ok := messages[0].(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: malformed message entry", ErrMalformedPrompt)
	}
	messageKwargs, ok := message["kwargs"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: message has no kwargs", ErrMalformedPrompt)
	}
	inner, ok := messageKwargs["prompt"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: message has no prompt", ErrMalformedPrompt)
	}
	innerKwargs, ok := inner["kwargs"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: inner prompt has no kwargs", ErrMalformedPrompt)
	}
	template, ok := innerKwargs["template"].(string)
	if !ok {
		return "", fmt.Errorf("%w: inner prompt has no template", ErrMalformedPrompt)
	}
	return template, nil
}

// fstringToGoTemplate converts the hub's f-string placeholders to Go
// template syntax for the two variables this pipeline uses.
func fstringToGoTemplate(template string) string {
	template = strings.ReplaceAll(template, "{context}", "{{.context}}")
	template = strings.ReplaceAll(template, "{question}", "{{.question}}")
	return template
}
