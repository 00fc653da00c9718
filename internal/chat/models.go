package chat

import "time"

// Event kinds stored in the log. The set is open ended; anything can
// be appended, but only the chat kinds are fed back to the model.
const (
	KindChatUser   = "chat_user"
	KindChatLLM    = "chat_llm"
	KindAnnotation = "annotation"
)

// User maps an opaque identifier (minted on cookie consent) to a
// free-form info blob. Info is write-once at creation.
type User struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Info      string    `gorm:"type:text" json:"info"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// Event is one immutable row in a user's timeline: a user message, a
// generated reply, or an annotation. Rows are only ever inserted or
// bulk-deleted by user, never updated. The autoincrement id defines
// the total insertion order.
type Event struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement;index:idx_events_user_id,priority:2" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;index:idx_events_user_id,priority:1" json:"-"`
	Kind      string    `gorm:"type:varchar(32);not null" json:"kind"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (Event) TableName() string { return "events" }
