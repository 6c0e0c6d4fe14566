// Package aiclassify asks an OpenAI-compatible chat model for a folder
// label before a file is filed. It is an optional collaborator of the
// moving engine; any API failure falls back to extension-based
// classification at the call site.
package aiclassify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/0ui-labs/folder-extractor-sub000/pkg/config"
)

// maxSnippetBytes bounds how much file content is sent to the model.
const maxSnippetBytes = 2048

// maxLabelLength bounds the folder label taken from a model answer.
const maxLabelLength = 40

const systemPrompt = `You are a file organization assistant. Given a filename and an
optional content snippet, answer with a single short folder category label in
UPPERCASE (for example INVOICES, PHOTOS, CONTRACTS, CODE). Answer with the
label only, no explanation.`

// ErrNoAPIKey is returned when the client is constructed without a key.
var ErrNoAPIKey = errors.New("no API key configured")

// ErrEmptyAnswer is returned when the model produced no usable label.
var ErrEmptyAnswer = errors.New("model returned no usable label")

// Classifier maps a filename plus content snippet to a folder label.
type Classifier interface {
	Classify(ctx context.Context, filename, snippet string) (string, error)
}

// Client is a Classifier backed by an OpenAI-compatible chat endpoint.
type Client struct {
	api   *openai.Client
	model string
	log   zerolog.Logger
}

// New creates a Client from the AI settings.
func New(settings config.AISettings, log zerolog.Logger) (*Client, error) {
	if settings.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	clientCfg := openai.DefaultConfig(settings.APIKey)
	if settings.BaseURL != "" {
		clientCfg.BaseURL = settings.BaseURL
	}

	model := settings.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &Client{
		api:   openai.NewClientWithConfig(clientCfg),
		model: model,
		log:   log,
	}, nil
}

// Classify asks the model for a folder label.
func (c *Client) Classify(ctx context.Context, filename, snippet string) (string, error) {
	user := "Filename: " + filename
	if snippet != "" {
		user += "\n\nContent snippet:\n" + snippet
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   16,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyAnswer
	}

	label := NormalizeLabel(resp.Choices[0].Message.Content)
	if label == "" {
		return "", ErrEmptyAnswer
	}

	c.log.Debug().Str("file", filename).Str("label", label).Msg("AI classified")

	return label, nil
}

// NormalizeLabel turns a model answer into a safe uppercase folder label:
// letters, digits and underscores only, bounded length. Returns "" when
// nothing usable remains.
func NormalizeLabel(answer string) string {
	answer = strings.TrimSpace(answer)
	if idx := strings.IndexByte(answer, '\n'); idx >= 0 {
		answer = answer[:idx]
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(answer) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}

	label := strings.Trim(b.String(), "_")
	if len(label) > maxLabelLength {
		label = label[:maxLabelLength]
	}

	return label
}

// ReadSnippet reads up to maxSnippetBytes from a file for classification.
// Binary-looking content yields an empty snippet.
func ReadSnippet(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, maxSnippetBytes)
	n, _ := f.Read(buf)
	if n <= 0 {
		return ""
	}

	snippet := buf[:n]
	for _, b := range snippet {
		if b == 0 {
			return ""
		}
	}

	return string(snippet)
}
