package handler

import (
	"time"

	"github.com/iliyamo/mindful/internal/service"
)

// TrackerHandler serves every protected resource endpoint.  All routes it
// handles sit behind the Auth Gate, so the caller's id is always present.
type TrackerHandler struct {
	Users      UserStore
	Moods      MoodStore
	Gratitudes GratitudeStore
	Journal    JournalStore
	Friends    FriendStore
	Stats      StatsStore
	Events     service.Publisher

	// Now is the clock used for stats and the calendar; time.Now when nil.
	Now func() time.Time
}

func (h *TrackerHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *TrackerHandler) events() service.Publisher {
	if h.Events == nil {
		return service.NopPublisher{}
	}
	return h.Events
}
