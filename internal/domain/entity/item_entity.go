package entity

import (
	"encoding/json"
	"time"
)

// Canonical content type values used across the app for items.
const (
	ContentTypeLink    = "link"
	ContentTypeNote    = "note"
	ContentTypeOther   = "other"
	ContentTypeTweet   = "tweet"
	ContentTypeYouTube = "youtube"
	ContentTypeVideo   = "video"
)

// Item is a piece of saved content inside a brain.
type Item struct {
	ID          string
	BrainID     string
	Title       string
	Content     string
	ContentType string
	URL         string
	IsPinned    bool
	Metadata    json.RawMessage
	CreatedBy   string
	CreatedAt   time.Time
}

// Tag labels items within a brain; (BrainID, Name) is unique.
type Tag struct {
	ID      string
	BrainID string
	Name    string
	Color   string
}
