package chat

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo is the event store. There is no cache in front of the
// database: every call reflects the latest committed state.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// EnsureUser inserts the user if missing. Info is write-once: an
// existing row is left untouched.
func (r *Repo) EnsureUser(ctx context.Context, id, info string) error {
	u := &User{ID: id, Info: info}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(u).Error
}

func (r *Repo) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Append inserts one immutable event and returns its id.
func (r *Repo) Append(ctx context.Context, userID, kind, content string) (uint64, error) {
	if userID == "" {
		return 0, errors.New("append: empty user id")
	}
	ev := &Event{UserID: userID, Kind: kind, Content: content}
	if err := r.db.WithContext(ctx).Create(ev).Error; err != nil {
		return 0, fmt.Errorf("append event: %w", err)
	}
	return ev.ID, nil
}

// Recent returns the most recent events newest-first. The composite
// (user_id, id) index keeps the scan proportional to limit rather
// than to total history size.
func (r *Repo) Recent(ctx context.Context, userID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	var evs []Event
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&evs).Error; err != nil {
		return nil, err
	}
	return evs, nil
}

// Clear deletes all events for a user. Irreversible and idempotent:
// clearing an empty timeline is not an error.
func (r *Repo) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Event{}).Error
}
