package model

// StoryNodeLLM is the recursive node shape the model is instructed to
// produce. It exists only between parsing and materialization.
type StoryNodeLLM struct {
	Content         string           `json:"content"`
	IsEnding        bool             `json:"isEnding"`
	IsWinningEnding bool             `json:"isWinningEnding"`
	Options         []StoryOptionLLM `json:"options,omitempty"`
}

// StoryOptionLLM is one choice inside the model output, pointing at the
// subtree reached by taking it.
type StoryOptionLLM struct {
	Text     string        `json:"text"`
	NextNode *StoryNodeLLM `json:"nextNode"`
}

// StoryLLMResponse is the top-level structure the model must return.
type StoryLLMResponse struct {
	Title    string        `json:"title"`
	RootNode *StoryNodeLLM `json:"rootNode"`
}
