package model

import "time"

// Story is the persisted root record of a generated adventure.
// Created once per successful generation, never mutated afterwards.
type Story struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// StoryOption is one choice on a node. NodeID is a forward reference to
// another StoryNode of the same story, assigned only after the child
// row exists.
type StoryOption struct {
	Text   string `json:"text"`
	NodeID int64  `json:"node_id"`
}

// StoryNode is a persisted node of the story tree. Exactly one node per
// story has IsRoot set. Ending nodes carry an empty options list.
type StoryNode struct {
	ID              int64         `json:"id"`
	StoryID         int64         `json:"story_id"`
	Content         string        `json:"content"`
	IsRoot          bool          `json:"is_root"`
	IsEnding        bool          `json:"is_ending"`
	IsWinningEnding bool          `json:"is_winning_ending"`
	Options         []StoryOption `json:"options"`
}

// StorySummary is the list-view projection of a story.
type StorySummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// CompleteStoryNodeResponse is the node view inside an assembled story.
type CompleteStoryNodeResponse struct {
	ID              int64         `json:"id"`
	Content         string        `json:"content"`
	IsEnding        bool          `json:"is_ending"`
	IsWinningEnding bool          `json:"is_winning_ending"`
	Options         []StoryOption `json:"options"`
}

// CompleteStoryResponse is the fully assembled story tree: every node
// keyed by id plus an explicit copy of the root node's entry.
type CompleteStoryResponse struct {
	ID        int64                               `json:"id"`
	Title     string                              `json:"title"`
	SessionID string                              `json:"session_id"`
	CreatedAt time.Time                           `json:"created_at"`
	RootNode  CompleteStoryNodeResponse           `json:"root_node"`
	AllNodes  map[int64]CompleteStoryNodeResponse `json:"all_nodes"`
}

// CreateStoryRequest is the payload for POST /stories/create.
type CreateStoryRequest struct {
	Theme     string `json:"theme" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}
