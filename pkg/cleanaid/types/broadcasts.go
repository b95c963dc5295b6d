package types

import (
	"encoding/json"
	"time"
)

// Broadcast status values.
const (
	BroadcastStatusDraft     = "draft"
	BroadcastStatusScheduled = "scheduled"
	BroadcastStatusSent      = "sent"
)

// Broadcast is a message pushed to a marketplace audience.
type Broadcast struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	Audience        string     `json:"audience,omitempty"`
	Channels        []string   `json:"channels,omitempty"`
	Status          string     `json:"status,omitempty"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	RecipientsCount int        `json:"recipientsCount,omitempty"`
	CreatedBy       string     `json:"createdBy,omitempty"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	SentAt          *time.Time `json:"sentAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// UnmarshalJSON accepts the _id and body aliases.
func (b *Broadcast) UnmarshalJSON(data []byte) error {
	type plain Broadcast
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	fillString(&v.ID, data, "_id")
	fillString(&v.Message, data, "body")
	*b = Broadcast(v)
	return nil
}

// BroadcastInput is the body of broadcast create and update calls.
type BroadcastInput struct {
	Title       string     `json:"title,omitempty"`
	Message     string     `json:"message,omitempty"`
	Audience    string     `json:"audience,omitempty"`
	Channels    []string   `json:"channels,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

// BroadcastStats is the summary shown on the broadcasts screen.
type BroadcastStats struct {
	TotalBroadcasts     int `json:"totalBroadcasts"`
	SentBroadcasts      int `json:"sentBroadcasts"`
	ScheduledBroadcasts int `json:"scheduledBroadcasts"`
	DraftBroadcasts     int `json:"draftBroadcasts"`
	TotalRecipients     int `json:"totalRecipients"`
}

// UploadResult is the payload of a file upload.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
}
