package ai

import (
	"fmt"
	"regexp"
	"strings"
)

// fenceRe matches one markdown code fence, optionally tagged json.
var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// contentCarrier is satisfied by message-like response objects that
// expose their text through a Content accessor.
type contentCarrier interface {
	GetContent() string
}

// extractor attempts to pull a text payload out of an opaque response
// value, reporting whether it applied.
type extractor func(raw interface{}) (string, bool)

// extractors is the ordered chain applied to a raw model response. The
// first extractor producing a non-empty value wins.
var extractors = []extractor{
	extractPlainString,
	extractContentMethod,
	extractMapping,
}

func extractPlainString(raw interface{}) (string, bool) {
	s, ok := raw.(string)
	return s, ok && s != ""
}

func extractContentMethod(raw interface{}) (string, bool) {
	c, ok := raw.(contentCarrier)
	if !ok {
		return "", false
	}
	s := c.GetContent()
	return s, s != ""
}

func extractMapping(raw interface{}) (string, bool) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return "", false
	}
	if s, ok := m["content"].(string); ok && s != "" {
		return s, true
	}
	if s, ok := m["text"].(string); ok && s != "" {
		return s, true
	}
	// Completion-API shapes: choices[0].message.content, choices[0].text.
	choices, ok := m["choices"].([]interface{})
	if !ok || len(choices) == 0 {
		return "", false
	}
	choice, ok := choices[0].(map[string]interface{})
	if !ok {
		return "", false
	}
	if msg, ok := choice["message"].(map[string]interface{}); ok {
		if s, ok := msg["content"].(string); ok && s != "" {
			return s, true
		}
	}
	if s, ok := choice["text"].(string); ok && s != "" {
		return s, true
	}
	return "", false
}

// ExtractResponseText pulls a text payload from a model response of
// unknown shape. When no extractor applies, the whole value is
// stringified as a last resort: the pipeline never dies here, the
// parser rejects garbage with a descriptive error instead.
func ExtractResponseText(raw interface{}) string {
	for _, extract := range extractors {
		if s, ok := extract(raw); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", raw)
}

// StripCodeFence extracts the inner content of a single markdown code
// fence (``` or ```json), which models routinely wrap JSON output in.
// Text without a fence passes through trimmed but otherwise unchanged.
func StripCodeFence(text string) string {
	if strings.Contains(text, "```") {
		if m := fenceRe.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return strings.TrimSpace(text)
}

// NormalizeResponse applies the full normalization: extract a text
// payload from the raw value, then strip one outer code fence.
func NormalizeResponse(raw interface{}) string {
	return StripCodeFence(ExtractResponseText(raw))
}
