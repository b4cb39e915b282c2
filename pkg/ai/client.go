package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

var log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

const storySystemPrompt = `You are a creative story writer that creates engaging choose-your-own-adventure stories.
Generate a complete branching story where every path eventually reaches an ending node.
Include at least one winning ending. Respond with the story structure only, no commentary.`

// storyFormatInstructions describes the exact JSON shape the parser
// accepts. Sent with every generation request.
const storyFormatInstructions = `The output must be a single JSON object with this structure:
{
  "title": "Story Title",
  "rootNode": {
    "content": "narrative text for this node",
    "isEnding": false,
    "isWinningEnding": false,
    "options": [
      {
        "text": "choice text shown to the player",
        "nextNode": { ...same structure, recursively... }
      }
    ]
  }
}
Ending nodes must have "isEnding": true and an empty "options" array.
"isWinningEnding" may only be true on ending nodes.
Do not add any fields or text outside the JSON object.`

// Client talks to an OpenAI-compatible completion API.
type Client struct {
	client     *openai.Client
	modelName  string
	imageModel string
	imageSize  string
	timeout    time.Duration
	maxRetries int
}

// Config holds the AI client settings.
type Config struct {
	APIKey     string
	ModelName  string
	BaseURL    string
	ImageModel string
	ImageSize  string
	Timeout    time.Duration
	MaxRetries int
}

// New creates a new AI client instance.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key is not set")
	}

	if cfg.ModelName == "" {
		cfg.ModelName = openai.GPT4oMini
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = openai.CreateImageModelDallE3
	}
	if cfg.ImageSize == "" {
		cfg.ImageSize = openai.CreateImageSize1024x1024
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:     openai.NewClientWithConfig(config),
		modelName:  cfg.ModelName,
		imageModel: cfg.ImageModel,
		imageSize:  cfg.ImageSize,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// GenerateStoryCompletion asks the model for a complete branching
// story on the given theme. The result is deliberately opaque: backends
// differ in what they hand back, and the normalizer owns coercing it to
// text. Nothing is validated here; the parser owns that.
func (c *Client) GenerateStoryCompletion(ctx context.Context, theme string) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	userPrompt := fmt.Sprintf("Generate a complete adventure story based on the theme: %s.\n%s", theme, storyFormatInstructions)

	attempts := 0
	for attempts < c.maxRetries {
		attempts++

		req := openai.ChatCompletionRequest{
			Model: c.modelName,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: storySystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			Temperature: 0.7,
			TopP:        0.95,
		}

		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			log.Error().Err(err).Int("attempt", attempts).Msg("chat completion request failed")
			if attempts >= c.maxRetries {
				return "", fmt.Errorf("story generation failed after %d attempts: %w", attempts, err)
			}
			time.Sleep(time.Duration(attempts) * time.Second)
			continue
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			log.Warn().Int("attempt", attempts).Msg("empty completion response")
			if attempts >= c.maxRetries {
				return "", errors.New("empty response from completion API after retries")
			}
			time.Sleep(time.Duration(attempts) * time.Second)
			continue
		}

		return resp.Choices[0].Message.Content, nil
	}

	return "", errors.New("failed to get a response from the completion API")
}
