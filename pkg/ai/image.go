package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// scenePromptPrefix sets a consistent visual style for scene images.
const scenePromptPrefix = "Digital art style, cinematic adventure game scene: "

// GenerateSceneImage generates an illustration for a scene description
// and returns its URL.
func (c *Client) GenerateSceneImage(ctx context.Context, description string) (string, error) {
	if description == "" {
		return "", errors.New("scene description is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ImageRequest{
		Model:          c.imageModel,
		Prompt:         scenePromptPrefix + description,
		Size:           c.imageSize,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	}

	resp, err := c.client.CreateImage(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("image generation request failed")
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("image API returned no data")
	}

	return resp.Data[0].URL, nil
}
