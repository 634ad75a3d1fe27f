package handler

import (
	"context"

	"github.com/iliyamo/mindful/internal/model"
)

// UserStore is the credential store as seen by the handlers.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id uint64) (model.User, error)
	UpdateProfile(ctx context.Context, id uint64, p model.ProfileUpdate) (model.User, error)
	ListMembers(ctx context.Context, excludeID uint64) ([]model.Member, error)
}

type MoodStore interface {
	Upsert(ctx context.Context, userID uint64, emoji, mood, date string) (model.Mood, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Mood, error)
	ListBetween(ctx context.Context, userID uint64, from, to string) ([]model.Mood, error)
}

type GratitudeStore interface {
	Create(ctx context.Context, userID uint64, text, date string) (model.Gratitude, error)
	List(ctx context.Context, userID uint64, date string) ([]model.Gratitude, error)
}

type JournalStore interface {
	Create(ctx context.Context, userID uint64, content, category string, isPublic bool) (model.JournalEntry, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.JournalEntry, error)
	ListPublic(ctx context.Context, category string) ([]model.JournalEntry, error)
	Delete(ctx context.Context, id, userID uint64) error
}

type FriendStore interface {
	CreateRequest(ctx context.Context, requesterID, requestedID uint64) (model.FriendRequest, error)
	RequestedIDs(ctx context.Context, requesterID uint64) ([]uint64, error)
}

type StatsStore interface {
	Counts(ctx context.Context, userID uint64) (model.Counts, error)
}
