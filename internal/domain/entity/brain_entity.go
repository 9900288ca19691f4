package entity

import "time"

// Brain is a user-owned named collection of items. Names are unique per owner.
type Brain struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	IsDefault   bool
	CreatedAt   time.Time
}

// BrainNav is one row of the navigation list: a brain plus flags for which
// content types it currently holds.
type BrainNav struct {
	ID         string
	Name       string
	IsDefault  bool
	HasTweet   bool
	HasYouTube bool
	HasNote    bool
	HasLink    bool
	HasOther   bool
}

// ItemCounts buckets a brain's items by content type.
type ItemCounts struct {
	Total   int `json:"total"`
	Tweets  int `json:"tweets"`
	Videos  int `json:"videos"`
	Notes   int `json:"notes"`
	Links   int `json:"links"`
	Other   int `json:"other"`
	YouTube int `json:"youtube"`
}

// BrainDetail is the per-brain summary: metadata plus item counts.
type BrainDetail struct {
	ID          string
	Name        string
	Description string
	Counts      ItemCounts
}
