package ctdf

import "time"

type ChatMessage struct {
	PrimaryIdentifier string `json:"id" bson:"primaryidentifier"`

	Room   string `json:"room"`
	UserID string `json:"user"`
	Text   string `json:"text"`

	CreationDateTime time.Time `json:"created"`
}
