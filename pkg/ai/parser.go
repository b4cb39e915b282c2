package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"adventure-server/internal/model"
)

const (
	// Bounds on accepted story trees. A misbehaving model could emit a
	// pathologically deep or huge tree; reject it before any DB write.
	maxStoryDepth = 50
	maxStoryNodes = 1000

	snippetLimit = 200
)

// ParseStoryResponse parses normalized response text into a validated
// StoryLLMResponse. Any schema violation fails outright; no partial
// recovery is attempted. The raw text is logged before the error is
// returned so operators can see what the model actually produced.
func ParseStoryResponse(text string) (*model.StoryLLMResponse, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &model.InvalidModelOutputError{Reason: "empty response text"}
	}

	var resp model.StoryLLMResponse
	if err := json.Unmarshal([]byte(trimmed), &resp); err != nil {
		log.Error().Err(err).Str("responseText", trimmed).Msg("model response is not valid JSON")
		return nil, &model.InvalidModelOutputError{
			Reason:  fmt.Sprintf("not valid JSON: %v", err),
			Snippet: snippet(trimmed),
		}
	}

	if resp.Title == "" {
		return nil, &model.InvalidModelOutputError{Reason: "missing title", Snippet: snippet(trimmed)}
	}
	if resp.RootNode == nil {
		return nil, &model.InvalidModelOutputError{Reason: "missing rootNode", Snippet: snippet(trimmed)}
	}

	nodeCount := 0
	if err := validateNode(resp.RootNode, "rootNode", 0, &nodeCount); err != nil {
		log.Error().Err(err).Str("responseText", trimmed).Msg("model response failed schema validation")
		return nil, &model.InvalidModelOutputError{
			Reason:  err.Error(),
			Snippet: snippet(trimmed),
			Err:     err,
		}
	}

	return &resp, nil
}

// validateNode checks one node and recurses into its options. path
// names the node's position for error messages.
func validateNode(node *model.StoryNodeLLM, path string, depth int, nodeCount *int) error {
	if node == nil {
		return fmt.Errorf("%s: node is missing", path)
	}
	if depth > maxStoryDepth {
		return fmt.Errorf("%s: %w (limit %d)", path, model.ErrStoryTooDeep, maxStoryDepth)
	}
	*nodeCount++
	if *nodeCount > maxStoryNodes {
		return fmt.Errorf("%s: %w (limit %d)", path, model.ErrStoryTooLarge, maxStoryNodes)
	}

	if node.Content == "" {
		return fmt.Errorf("%s: empty content", path)
	}
	if node.IsWinningEnding && !node.IsEnding {
		return fmt.Errorf("%s: isWinningEnding set on a non-ending node", path)
	}

	if node.IsEnding {
		if len(node.Options) > 0 {
			return fmt.Errorf("%s: ending node has %d options", path, len(node.Options))
		}
		return nil
	}

	if len(node.Options) == 0 {
		return fmt.Errorf("%s: non-ending node has no options", path)
	}
	for i, opt := range node.Options {
		optPath := fmt.Sprintf("%s.options[%d]", path, i)
		if opt.Text == "" {
			return fmt.Errorf("%s: empty option text", optPath)
		}
		if err := validateNode(opt.NextNode, optPath+".nextNode", depth+1, nodeCount); err != nil {
			return err
		}
	}
	return nil
}

func snippet(s string) string {
	if len(s) <= snippetLimit {
		return s
	}
	return s[:snippetLimit] + "..."
}
