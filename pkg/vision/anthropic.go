package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/AlanDuong07/screensense/pkg/logging"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"

	// Computer-use protocol revisions. The tool version configured on
	// the processor selects which beta flag the request carries.
	betaComputerUse20250124 = "computer-use-2025-01-24"
	betaComputerUse20241022 = "computer-use-2024-10-22"
)

// defaultPrompt frames the instruction for the model. The exact wording
// is configuration, not contract; swap it with WithPrompt.
const defaultPrompt = `Locate every element on the screen matching this instruction: %s

Respond with only a JSON array, no prose. Each entry must be an object
with a "description" string and a "coordinate" array of exactly two
numbers [x, y] in CSS pixels from the top-left of the viewport. Return
[] if nothing matches.`

// AnthropicProcessor is the default vision backend. It asks the Claude
// Messages API to locate elements in a screenshot and memoizes results
// per instance. All failure modes produce an empty element list; the
// reason lands in the component log, never in the return value.
type AnthropicProcessor struct {
	apiKey      string
	model       string
	toolVersion string
	maxTokens   int
	prompt      string
	baseURL     string
	httpClient  *http.Client

	mu    sync.Mutex
	cache *memoCache

	log *logging.Logger
}

// AnthropicOption configures an AnthropicProcessor.
type AnthropicOption func(*AnthropicProcessor)

// WithModel sets the vision model to query.
func WithModel(model string) AnthropicOption {
	return func(p *AnthropicProcessor) { p.model = model }
}

// WithToolVersion sets the computer-use tool version string.
func WithToolVersion(v string) AnthropicOption {
	return func(p *AnthropicProcessor) { p.toolVersion = v }
}

// WithMaxTokens caps the response length.
func WithMaxTokens(n int) AnthropicOption {
	return func(p *AnthropicProcessor) { p.maxTokens = n }
}

// WithPrompt replaces the instruction prompt template. The template is
// applied with fmt.Sprintf and receives the instruction as its only
// argument.
func WithPrompt(template string) AnthropicOption {
	return func(p *AnthropicProcessor) { p.prompt = template }
}

// WithBaseURL points the processor at a different API host.
func WithBaseURL(url string) AnthropicOption {
	return func(p *AnthropicProcessor) { p.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) AnthropicOption {
	return func(p *AnthropicProcessor) { p.httpClient = c }
}

// WithCacheSize bounds the memoization cache.
func WithCacheSize(n int) AnthropicOption {
	return func(p *AnthropicProcessor) { p.cache = newMemoCache(n) }
}

// NewAnthropic creates the default processor. An empty apiKey is
// allowed: the processor then answers every lookup with an empty list.
func NewAnthropic(apiKey string, opts ...AnthropicOption) *AnthropicProcessor {
	log, _ := logging.New("vision.anthropic")
	p := &AnthropicProcessor{
		apiKey:      apiKey,
		model:       "claude-3-7-sonnet-20250219",
		toolVersion: "20250124",
		maxTokens:   1024,
		prompt:      defaultPrompt,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		cache:       newMemoCache(128),
		log:         log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Claude Messages API wire types. Content is a block union discriminated
// by Type: text, tool_use, tool_result, image.
type anthropicMessage struct {
	Role    string           `json:"role"`
	Content []anthropicBlock `json:"content"`
}

type anthropicBlock struct {
	Type      string                `json:"type"`
	Text      string                `json:"text,omitempty"`
	ID        string                `json:"id,omitempty"`
	Name      string                `json:"name,omitempty"`
	Input     json.RawMessage       `json:"input,omitempty"`
	ToolUseID string                `json:"tool_use_id,omitempty"`
	Content   []anthropicBlock      `json:"content,omitempty"`
	Source    *anthropicImageSource `json:"source,omitempty"`
}

type anthropicImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []anthropicBlock `json:"content"`
}

// Process resolves instruction against screenshot. It never returns a
// non-nil error; see the package comment for the degradation policy.
func (p *AnthropicProcessor) Process(ctx context.Context, screenshot, instruction string) ([]Element, error) {
	if p.apiKey == "" {
		p.log.Warnf("no API key configured, returning no elements for %q", instruction)
		return []Element{}, nil
	}

	key := cacheKey(screenshot, instruction)

	p.mu.Lock()
	if cached, ok := p.cache.get(key); ok {
		p.mu.Unlock()
		if cached == nil {
			return []Element{}, nil
		}
		return cached, nil
	}
	p.mu.Unlock()

	text, found, err := p.query(ctx, screenshot, instruction)
	if err != nil {
		p.log.Errorf("vision request failed for %q: %v", instruction, err)
		p.remember(key, nil)
		return []Element{}, nil
	}
	if !found {
		// A response with no text block is transient model behavior,
		// not a verdict on the instruction, so it is not remembered.
		p.log.Warnf("vision response had no text block for %q", instruction)
		return []Element{}, nil
	}

	elements, err := parseElements(text)
	if err != nil {
		p.log.Errorf("vision response rejected for %q: %v", instruction, err)
		p.remember(key, nil)
		return []Element{}, nil
	}

	p.remember(key, elements)
	return elements, nil
}

func (p *AnthropicProcessor) remember(key string, elements []Element) {
	p.mu.Lock()
	p.cache.put(key, elements)
	p.mu.Unlock()
}

// query performs the three-message computer-use exchange and returns the
// first text block of the response. found is false when the response
// contained no text block at all.
func (p *AnthropicProcessor) query(ctx context.Context, screenshot, instruction string) (text string, found bool, err error) {
	const toolUseID = "toolu_screenshot"

	reqBody := anthropicRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages: []anthropicMessage{
			{
				Role: "user",
				Content: []anthropicBlock{
					{Type: "text", Text: fmt.Sprintf(p.prompt, instruction)},
				},
			},
			{
				// Synthetic turn: pretend the model already asked for a
				// screenshot so the image arrives as a tool result.
				Role: "assistant",
				Content: []anthropicBlock{
					{Type: "text", Text: "I'll take a screenshot to see the current state of the screen."},
					{Type: "tool_use", ID: toolUseID, Name: "screenshot", Input: json.RawMessage(`{}`)},
				},
			},
			{
				Role: "user",
				Content: []anthropicBlock{
					{
						Type:      "tool_result",
						ToolUseID: toolUseID,
						Content: []anthropicBlock{
							{Type: "image", Source: &anthropicImageSource{
								Type:      "base64",
								MediaType: "image/png",
								Data:      screenshot,
							}},
						},
					},
				},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", false, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("anthropic-beta", p.betaFlag())

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", false, fmt.Errorf("vision API returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}

	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, true, nil
		}
	}
	return "", false, nil
}

func (p *AnthropicProcessor) betaFlag() string {
	if strings.Contains(p.toolVersion, "20250124") {
		return betaComputerUse20250124
	}
	return betaComputerUse20241022
}
