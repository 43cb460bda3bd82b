package vision

import (
	"context"
	"fmt"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/AlanDuong07/screensense/pkg/logging"
)

// OpenAIProcessor resolves instructions through an OpenAI-compatible
// chat-completions API instead of the default backend. Register it on a
// session's registry and select it by name through configuration.
//
// It honors the same contract as the default processor: per-instance
// memoization on the screenshot-prefix key and empty results for every
// failure mode.
type OpenAIProcessor struct {
	apiKey    string
	model     string
	maxTokens int
	prompt    string
	client    openai.Client

	mu    sync.Mutex
	cache *memoCache

	log *logging.Logger
}

// OpenAIOption configures an OpenAIProcessor.
type OpenAIOption func(*OpenAIProcessor)

// WithOpenAIModel sets the vision-capable model to query.
func WithOpenAIModel(model string) OpenAIOption {
	return func(p *OpenAIProcessor) { p.model = model }
}

// WithOpenAIMaxTokens caps the response length.
func WithOpenAIMaxTokens(n int) OpenAIOption {
	return func(p *OpenAIProcessor) { p.maxTokens = n }
}

// WithOpenAIPrompt replaces the instruction prompt template.
func WithOpenAIPrompt(template string) OpenAIOption {
	return func(p *OpenAIProcessor) { p.prompt = template }
}

// WithOpenAICacheSize bounds the memoization cache.
func WithOpenAICacheSize(n int) OpenAIOption {
	return func(p *OpenAIProcessor) { p.cache = newMemoCache(n) }
}

// WithOpenAIRequestOptions appends raw client options, e.g. a custom
// base URL for compatible APIs or tests.
func WithOpenAIRequestOptions(opts ...option.RequestOption) OpenAIOption {
	return func(p *OpenAIProcessor) {
		p.client = openai.NewClient(append([]option.RequestOption{option.WithAPIKey(p.apiKey)}, opts...)...)
	}
}

// NewOpenAI creates an OpenAI-backed processor. As with the default
// backend, an empty apiKey soft-fails every lookup.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAIProcessor {
	log, _ := logging.New("vision.openai")
	p := &OpenAIProcessor{
		apiKey:    apiKey,
		model:     "gpt-4o",
		maxTokens: 1024,
		prompt:    defaultPrompt,
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		cache:     newMemoCache(128),
		log:       log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process implements Processor. It never returns a non-nil error.
func (p *OpenAIProcessor) Process(ctx context.Context, screenshot, instruction string) ([]Element, error) {
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
		p.log.Warnf("vision response had no text content for %q", instruction)
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

func (p *OpenAIProcessor) remember(key string, elements []Element) {
	p.mu.Lock()
	p.cache.put(key, elements)
	p.mu.Unlock()
}

func (p *OpenAIProcessor) query(ctx context.Context, screenshot, instruction string) (text string, found bool, err error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(p.model),
		MaxTokens: openai.Int(int64(p.maxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(fmt.Sprintf(p.prompt, instruction)),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart("Here is the current screenshot."),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: "data:image/png;base64," + screenshot,
				}),
			}),
		},
	})
	if err != nil {
		return "", false, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", false, nil
	}
	return resp.Choices[0].Message.Content, true, nil
}
